package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		j, ok := load()
		if !ok {
			return
		}
		printInfo(j)
	case "entries":
		j, ok := load()
		if !ok {
			return
		}
		printInfo(j)
		for k, e := range j.Entries {
			fmt.Printf("%4d  frame %5d  %-8s %-36s %s\n", k, e.Frame, e.Action, e.Token, string(e.Payload))
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: journalinfo format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load() (*domain.Journal, bool) {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: journalinfo %s <file%s>\n", os.Args[1], storage.FileExt)
		return nil, false
	}
	j, err := storage.LoadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot read journal: %v\n", err)
		return nil, false
	}
	return j, true
}

func printInfo(j *domain.Journal) {
	fmt.Printf("seed      %d\n", j.Seed)
	fmt.Printf("recorded  %s\n", time.Unix(j.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("frames    %d (%.1fs)\n", j.Frames, float64(j.Frames)*domain.FrameTime)

	counts := make(map[domain.ActionType]int)
	for _, e := range j.Entries {
		counts[e.Action]++
	}
	fmt.Printf("commands  %d\n", len(j.Entries))
	for _, action := range slices.Sorted(maps.Keys(counts)) {
		fmt.Printf("  %-8s %d\n", action, counts[action])
	}
}

func printHelp() {
	fmt.Println(`Journal Utility - просмотр журналов команд
Commands:
  info <file>            - сид, длина партии и сводка по командам
  entries <file>         - то же плюс все записи журнала
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
