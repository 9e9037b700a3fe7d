// cmd/serve.go
package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Bitlatte/notebook/internal/config"
	"github.com/Bitlatte/notebook/internal/fetch"
	"github.com/Bitlatte/notebook/internal/view"
)

var serverPort int // For the --port flag

const debounceDuration = 500 * time.Millisecond

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the notes site locally and rebuilds the index on changes",
	Long: `The serve command builds the post index, then serves the listing page,
note pages, the index file and the raw notes. It watches the content directory
and rebuilds the index whenever a note changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Performing initial build...")
		if _, err := runBuildProcess(appConfig, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchContent(watcher, appConfig)
		addWatches(watcher, appConfig.ContentPath())

		handler, err := newSiteHandler(appConfig)
		if err != nil {
			return err
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Printf("Serving %s on http://localhost%s", appConfig.SiteDir, serverAddr)
		log.Println("Press Ctrl+C to stop the server.")

		srv := &http.Server{
			Addr:              serverAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// newSiteHandler serves the pages, the index file and the raw notes from the
// site directory.
func newSiteHandler(cfg config.Config) (http.Handler, error) {
	f := fetch.Dir{IndexFile: cfg.IndexPath(), ContentDir: cfg.ContentPath()}
	pages, err := view.New(f, view.Options{
		SiteTitle:   cfg.SiteTitle,
		BaseURL:     cfg.BaseURL,
		SettleDelay: cfg.SettleDelay,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	pages.Register(mux)

	indexName := "/" + filepath.Base(cfg.IndexPath())
	mux.HandleFunc(indexName, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, cfg.IndexPath())
	})
	content := "/" + fetch.ContentPrefix + "/"
	mux.Handle(content, http.StripPrefix(content, http.FileServer(http.Dir(cfg.ContentPath()))))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(cfg.SiteDir, "static")))))

	return noCache(mux), nil
}

// noCache prevents directory listings and caching during development.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func watchContent(watcher *fsnotify.Watcher, cfg config.Config) {
	var buildTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				log.Printf("New directory created: %s. Adding to watcher.", event.Name)
				if err := watcher.Add(event.Name); err != nil {
					log.Printf("Error adding new directory %s to watcher: %v", event.Name, err)
				}
			} else if !strings.HasSuffix(strings.ToLower(event.Name), ".md") {
				continue
			}
			log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				log.Println("Rebuilding index due to changes...")
				if _, err := runBuildProcess(cfg, log.Writer()); err != nil {
					log.Printf("Error during rebuild: %v", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func addWatches(watcher *fsnotify.Watcher, root string) {
	log.Printf("Setting up watch for %s and its subdirectories...", root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Error walking %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if watchErr := watcher.Add(path); watchErr != nil {
				log.Printf("Failed to watch %s: %v", path, watchErr)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error during initial directory walk for watching %s: %v", root, err)
	}
}

// Helper function to check if a path is a directory
func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
