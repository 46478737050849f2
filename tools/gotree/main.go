package main

import "fmt"
import "os"
import "runtime"

import "github.com/bnclabs/gotree/llrb"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "load":
		doLoad(os.Args[2:])
	case "monster":
		doMonster(os.Args[2:])
	default:
		fmt.Println("please provide a valid command !!")
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: gotree [load|monster] [flags]")
	fmt.Println("  load     load random entries and report statistics")
	fmt.Println("  monster  apply a grammar generated op stream, verified")
	fmt.Println("           against the reference dict")
}

func setCPU(n int) {
	fmt.Printf("Setting number of cpus to %v\n", n)
	runtime.GOMAXPROCS(n)
}

func enablelog(enable bool) {
	if enable {
		llrb.LogComponents("all")
	}
}
