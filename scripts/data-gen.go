/*
	Basic script that churns random keys through an embedded store so that
	compaction runs many times. Stops early on Ctrl+C.
*/

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/0xRadioAc7iv/go-simpledb/internal/utils"
	"github.com/0xRadioAc7iv/go-simpledb/simpledb"
)

const (
	// Fixed universe
	totalKeys   = 10
	totalValues = 10

	oneMegabyte = 1024 * 1024

	progressEvery = 50_000
)

func main() {
	logPath := flag.String("log", "", "Log file path (default <cwd>/log)")
	iterations := flag.Int("n", 1_000_000, "Number of iterations")
	maxBytes := flag.Int64("max-bytes", oneMegabyte, "Compaction threshold in bytes")
	flag.Parse()

	ctx, stop := utils.InterruptContext()
	defer stop()

	db, err := simpledb.Open(
		simpledb.WithLogFilePath(*logPath),
		simpledb.WithMaxBytesPerFile(*maxBytes),
	)
	if err != nil {
		fmt.Println("Error while opening:", err)
		return
	}
	defer db.Close()

	start := time.Now()
	fmt.Println("Starting simpledb churn-heavy load generator")

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var setCount, deleteCount, getCount int

	for i := 0; i < *iterations; i++ {
		if ctx.Err() != nil {
			fmt.Println("interrupted")
			break
		}

		if _, _, err := db.Get(keys[rng.Intn(len(keys))]); err != nil {
			fmt.Println("GET error:", err)
			return
		}
		getCount++

		if i != 0 && i%progressEvery == 0 {
			fmt.Printf("Set %d random key value pairs in %d iterations\n", setCount, i)
		}

		// ---- WRITE / OVERWRITE (forces overwrite garbage) ----
		if i%2 == 0 {
			if err := db.Set(keys[rng.Intn(len(keys))], values[rng.Intn(len(values))]); err != nil {
				fmt.Println("SET error:", err)
				return
			}
			setCount++
		}

		// ---- DELETE ----
		if i%10 == 0 {
			if err := db.Delete(keys[rng.Intn(len(keys))]); err != nil {
				fmt.Println("DELETE error:", err)
				return
			}
			deleteCount++
		}
	}

	stats := db.Stats()

	fmt.Println()
	fmt.Println("Total set count:", setCount)
	fmt.Println("Total delete count:", deleteCount)
	fmt.Println("Total get count:", getCount)
	fmt.Printf("Live keys: %d, log size: %d bytes, compactions: %d\n", stats.Keys, stats.LogSize, stats.Compactions)
	fmt.Printf("Load finished in %v\n", time.Since(start))
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key%d", i+1)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value%d", i+1)
	}
	return values
}
