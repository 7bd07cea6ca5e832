// Command bufctl is a thin demonstration CLI for the buffer-pool core: it
// opens a database file, allocates a handful of pages, unpins each one
// clean, and prints pool occupancy. It does not write page data, fetch, or
// flush. It exists to exercise the package end
// to end, the way tinySQL's small cmd/ tools each exercise one slice of the
// engine — it is not part of the buffer-pool core's functional scope.
package main

import (
	"flag"
	"log"

	"github.com/waldherr-labs/bufkit/internal/config"
	"github.com/waldherr-labs/bufkit/internal/storage"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML pool config file (optional)")
	pages := flag.Int("new-pages", 3, "number of pages to allocate and report on")
	flag.Parse()

	cfg := config.DefaultPoolConfig()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("bufctl: %v", err)
		}
		cfg = loaded
	}

	disk, err := storage.NewDiskManager(cfg.DBPath)
	if err != nil {
		log.Fatalf("bufctl: open disk manager: %v", err)
	}
	defer disk.Close()

	replacer := storage.NewClockReplacer(cfg.PoolSize)
	bpm := storage.NewBufferPoolManager(cfg.PoolSize, disk, replacer)
	diag := storage.NewDiagnostics(bpm)

	for i := 0; i < *pages; i++ {
		page, id, err := bpm.NewPage()
		if err != nil {
			log.Fatalf("bufctl: new page: %v", err)
		}
		if page == nil {
			log.Printf("bufctl: pool exhausted after %d pages", i)
			break
		}
		log.Printf("bufctl: allocated page %d", id)
		bpm.UnpinPage(id, false)
	}

	diag.LogSnapshot()
}
