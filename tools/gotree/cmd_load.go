package main

import "flag"
import "fmt"
import "log"
import "math/rand"
import "os"
import "time"

import sigar "github.com/cloudfoundry/gosigar"
import hm "github.com/dustin/go-humanize"

import "github.com/bnclabs/gotree/llrb"

var loadopts struct {
	n         int
	ncpu      int
	seed      int
	selfcheck bool
	log       bool
}

func parseLoadopts(args []string) {
	f := flag.NewFlagSet("load", flag.ExitOnError)

	f.IntVar(&loadopts.n, "n", 1000000,
		"number of items to generate and insert")
	f.IntVar(&loadopts.ncpu, "ncpu", 1,
		"set number cores to use.")
	f.IntVar(&loadopts.seed, "seed", 1,
		"random seed")
	f.BoolVar(&loadopts.selfcheck, "selfcheck", false,
		"validate the tree after every mutation")
	f.BoolVar(&loadopts.log, "log", false,
		"enable component logging")
	f.Parse(args)

	fmt.Printf("seed: %v\n", loadopts.seed)
	setCPU(loadopts.ncpu)
	enablelog(loadopts.log)
}

func doLoad(args []string) {
	parseLoadopts(args)

	setts := llrb.Defaultsettings()
	setts["selfcheck"] = loadopts.selfcheck
	index := llrb.NewLLRB[int64, int64]("load", setts)
	defer index.Destroy()

	rnd := rand.New(rand.NewSource(int64(loadopts.seed)))
	keyspace := int64(loadopts.n) * 2

	now := time.Now()
	for i := 0; i < loadopts.n; i++ {
		index.Set(rnd.Int63n(keyspace), int64(i))
	}
	took := time.Since(now)
	fmsg := "Took %v to load %v items, %v entries in the index\n"
	fmt.Printf(fmsg, took, hm.Comma(int64(loadopts.n)), hm.Comma(index.Count()))

	now = time.Now()
	index.Validate()
	fmt.Printf("Took %v to validate the index\n", time.Since(now))

	now = time.Now()
	sweepranks(index)
	fmt.Printf("Took %v to sweep order statistics\n", time.Since(now))

	printmemory()
	index.Log()
}

// select every rank and cross check with Rank(), the identity must
// hold for all entries.
func sweepranks(index *llrb.LLRB[int64, int64]) {
	count := index.Count()
	for k := int64(0); k < count; k++ {
		entry, ok := index.Select(k)
		if ok == false {
			log.Fatalf("select(%v) failed with %v entries", k, count)
		}
		if x := index.Rank(entry.Key); x != k {
			log.Fatalf("rank(%v): expected %v, got %v", entry.Key, k, x)
		}
	}
}

func printmemory() {
	mem := sigar.Mem{}
	mem.Get()
	fmsg := "Sysmem total:%v used:%v free:%v\n"
	fmt.Printf(fmsg, hm.Bytes(mem.Total), hm.Bytes(mem.Used), hm.Bytes(mem.Free))

	pm := sigar.ProcMem{}
	if err := pm.Get(os.Getpid()); err == nil {
		fmt.Printf("Procmem resident:%v\n", hm.Bytes(pm.Resident))
	}
}
