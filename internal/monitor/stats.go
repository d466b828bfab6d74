// Package monitor reports process and sandbox health: memory, disk usage
// of the volume backing the allowed root, and recycle bin growth.
package monitor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var startTime = time.Now()

// DiskUsage describes the volume backing a directory.
type DiskUsage struct {
	TotalBytes uint64 `json:"total_bytes"`
	FreeBytes  uint64 `json:"free_bytes"`
	UsedBytes  uint64 `json:"used_bytes"`
}

// UsedPercent returns used space as a percentage, 0 when unknown.
func (d DiskUsage) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes) / float64(d.TotalBytes) * 100
}

// RecycleStats summarizes the recycle bin.
type RecycleStats struct {
	Entries    int    `json:"entries"`
	TotalBytes uint64 `json:"total_bytes"`
}

// Stats is one monitoring snapshot.
type Stats struct {
	Hostname   string        `json:"hostname"`
	Platform   string        `json:"platform"`
	CPUs       int           `json:"cpus"`
	Goroutines int           `json:"goroutines"`
	Uptime     time.Duration `json:"uptime"`
	HeapAlloc  uint64        `json:"heap_alloc"`
	HeapSys    uint64        `json:"heap_sys"`
	Root       string        `json:"root"`
	Disk       DiskUsage     `json:"disk"`
	Recycle    RecycleStats  `json:"recycle"`
}

// Snapshot collects a snapshot for the sandbox rooted at root with its
// recycle bin at recycleDir.
func Snapshot(root, recycleDir string) (Stats, error) {
	hostname, _ := os.Hostname()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Stats{
		Hostname:   hostname,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		CPUs:       runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(startTime).Truncate(time.Second),
		HeapAlloc:  mem.HeapAlloc,
		HeapSys:    mem.HeapSys,
		Root:       root,
	}

	disk, err := diskUsage(root)
	if err != nil {
		return s, fmt.Errorf("disk usage: %w", err)
	}
	s.Disk = disk

	recycle, err := recycleStats(recycleDir)
	if err != nil {
		return s, fmt.Errorf("recycle stats: %w", err)
	}
	s.Recycle = recycle

	return s, nil
}

func recycleStats(dir string) (RecycleStats, error) {
	var stats RecycleStats
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.TotalBytes += uint64(info.Size())
		return nil
	})
	if err != nil {
		return stats, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, err
	}
	stats.Entries = len(entries)
	return stats, nil
}

// Render formats the snapshot as aligned text for terminal display.
func (s Stats) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "System\n")
	fmt.Fprintf(&b, "  Host        %s (%s)\n", s.Hostname, s.Platform)
	fmt.Fprintf(&b, "  CPUs        %d\n", s.CPUs)
	fmt.Fprintf(&b, "  Goroutines  %d\n", s.Goroutines)
	fmt.Fprintf(&b, "  Uptime      %s\n", s.Uptime)
	fmt.Fprintf(&b, "  Heap        %s / %s\n", formatBytes(s.HeapAlloc), formatBytes(s.HeapSys))
	fmt.Fprintf(&b, "Sandbox\n")
	fmt.Fprintf(&b, "  Root        %s\n", s.Root)
	if s.Disk.TotalBytes > 0 {
		fmt.Fprintf(&b, "  Disk        %.1f%% used (%s free of %s)\n",
			s.Disk.UsedPercent(), formatBytes(s.Disk.FreeBytes), formatBytes(s.Disk.TotalBytes))
	}
	fmt.Fprintf(&b, "  Recycle     %d entries, %s", s.Recycle.Entries, formatBytes(s.Recycle.TotalBytes))
	return b.String()
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTP"[exp])
}
