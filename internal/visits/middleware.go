package visits

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

// skipPrefixes lists paths that never count as page views.
var skipPrefixes = []string{"/assets/", "/healthz", "/admin/", "/favicon"}

// Track records page views asynchronously. It skips assets and admin paths
// and honors the Do Not Track header.
func Track(store *Store, clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || skipPath(r.URL.Path) || r.Header.Get("DNT") == "1" {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientIP(r)
			ua := r.UserAgent()
			path := r.URL.Path
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := store.Record(ctx, ip, ua, path); err != nil {
					log.Printf("visits: %v", err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func skipPath(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// StartRetentionCleanup deletes visits older than 12 months, once at startup
// and then daily, until ctx is canceled.
func StartRetentionCleanup(ctx context.Context, store *Store) {
	const retention = 365 * 24 * time.Hour
	go func() {
		run := func() {
			cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			n, err := store.CleanupOld(cctx, retention)
			if err != nil {
				log.Printf("visits: retention cleanup: %v", err)
				return
			}
			if n > 0 {
				log.Printf("visits: removed %d visits past retention", n)
			}
		}
		run()
		t := time.NewTicker(24 * time.Hour)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				run()
			}
		}
	}()
}
