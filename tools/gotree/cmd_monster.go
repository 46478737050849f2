package main

import "encoding/json"
import "flag"
import "fmt"
import "io/ioutil"
import "log"
import "sort"

import parsec "github.com/prataprc/goparsec"
import "github.com/prataprc/monster"
import mcommon "github.com/prataprc/monster/common"

import "github.com/bnclabs/gotree/dict"
import "github.com/bnclabs/gotree/llrb"

var monsteropts struct {
	repeat   int
	ncpu     int
	seed     int
	bagdir   string
	prodfile string
	opdump   bool
}

func parseMonsteropts(args []string) {
	f := flag.NewFlagSet("monster", flag.ExitOnError)

	f.IntVar(&monsteropts.repeat, "repeat", 1000,
		"number of command batches to generate and apply")
	f.IntVar(&monsteropts.ncpu, "ncpu", 1,
		"set number cores to use.")
	f.IntVar(&monsteropts.seed, "seed", 1,
		"random seed")
	f.StringVar(&monsteropts.bagdir, "bagdir", "",
		"bag directory for monster sample data.")
	f.StringVar(&monsteropts.prodfile, "prodfile", "",
		"monster production file")
	f.BoolVar(&monsteropts.opdump, "opdump", false,
		"dump every command while applying")
	f.Parse(args)

	if monsteropts.prodfile == "" {
		log.Fatalf("please provide production file to monster")
	}

	fmt.Printf("seed: %v\n", monsteropts.seed)
	setCPU(monsteropts.ncpu)
}

func doMonster(args []string) {
	parseMonsteropts(args)

	opch := make(chan [][]interface{}, 1000)
	go generate(monsteropts.repeat, monsteropts.prodfile, opch)

	withIndex(monsteropts.repeat, opch)
}

// apply the generated command stream on the llrb index and on the
// reference dict in lockstep, any disagreement is fatal.
func withIndex(count int, opch chan [][]interface{}) {
	setts := llrb.Defaultsettings()
	index := llrb.NewLLRB[int64, int64]("monster", setts)
	defer index.Destroy()
	ref := dict.NewDict[int64, int64]("monsterref")
	defer ref.Destroy()

	stats := map[string]int{}
	for count > 0 {
		count--
		cmds := <-opch
		for _, cmd := range cmds {
			switch cmd[0].(string) {
			case "get":
				stats = opGet(ref, index, cmd, stats)
			case "min":
				stats = opMin(ref, index, cmd, stats)
			case "max":
				stats = opMax(ref, index, cmd, stats)
			case "delmin":
				stats = opDelmin(ref, index, cmd, stats)
			case "delmax":
				stats = opDelmax(ref, index, cmd, stats)
			case "upsert":
				stats = opUpsert(ref, index, cmd, stats)
			case "delete":
				stats = opDelete(ref, index, cmd, stats)
			case "validate":
				index.Validate()
				stats["validate"] += 1
				if monsteropts.opdump {
					fmt.Printf("%v\n", cmd)
				}
			}
		}
	}
	index.Validate()
	verifyorder(ref, index)

	keys, total := []string{}, 0
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		total += stats[key]
		fmt.Printf("%v : %v\n", key, stats[key])
	}
	fmt.Printf("total : %v\n", total)
}

func verifyorder(ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64]) {
	refentries, entries := ref.InOrder(), index.InOrder()
	if len(refentries) != len(entries) {
		fmsg := "inorder: expected %v entries, got %v"
		log.Fatalf(fmsg, len(refentries), len(entries))
	}
	for i, refentry := range refentries {
		if entries[i] != refentry {
			fmsg := "inorder: at %v expected %v, got %v"
			log.Fatalf(fmsg, i, refentry, entries[i])
		}
	}
}

//--------
// monster
//--------

func generate(repeat int, prodfile string, opch chan<- [][]interface{}) {
	text, err := ioutil.ReadFile(prodfile)
	if err != nil {
		log.Fatal(err)
	}
	root := compile(parsec.NewScanner(text)).(mcommon.Scope)
	seed, bagdir := uint64(monsteropts.seed), monsteropts.bagdir
	scope := monster.BuildContext(root, seed, bagdir, prodfile)
	nterms := scope["_nonterminals"].(mcommon.NTForms)
	for i := 0; i < repeat; i++ {
		scope = scope.RebuildContext()
		val := evaluate("root", scope, nterms["s"])
		var arr [][]interface{}
		if err := json.Unmarshal([]byte(val.(string)), &arr); err != nil {
			log.Fatal(err)
		}
		opch <- arr
	}
}

func compile(s parsec.Scanner) parsec.ParsecNode {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("%v at %v", r, s.GetCursor())
		}
	}()
	root, _ := monster.Y(s)
	return root
}

func evaluate(
	name string, scope mcommon.Scope, forms []*mcommon.Form) interface{} {

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("%v", r)
		}
	}()
	return monster.EvalForms(name, scope, forms)
}

//---------
// validate
//---------

func opGet(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	key := int64(cmd[1].(float64))
	refval, refok := ref.Get(key)
	val, ok := index.Get(key)
	if refok != ok {
		log.Fatalf("get(%v): expected %v, got %v\n", key, refok, ok)
	} else if refok && refval != val {
		log.Fatalf("get(%v): expected %v, got %v\n", key, refval, val)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refval, val)
	}
	stats["total"] += 1
	if refok {
		stats["get.ok"] += 1
	} else {
		stats["get.na"] += 1
	}
	return stats
}

func opMin(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	refentry, refok := ref.Min()
	entry, ok := index.Min()
	if refok != ok {
		log.Fatalf("min: expected %v, got %v\n", refok, ok)
	} else if refok && refentry != entry {
		log.Fatalf("min: expected %v, got %v\n", refentry, entry)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refentry, entry)
	}
	stats["total"] += 1
	if refok {
		stats["min.ok"] += 1
	} else {
		stats["min.na"] += 1
	}
	return stats
}

func opMax(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	refentry, refok := ref.Max()
	entry, ok := index.Max()
	if refok != ok {
		log.Fatalf("max: expected %v, got %v\n", refok, ok)
	} else if refok && refentry != entry {
		log.Fatalf("max: expected %v, got %v\n", refentry, entry)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refentry, entry)
	}
	stats["total"] += 1
	if refok {
		stats["max.ok"] += 1
	} else {
		stats["max.na"] += 1
	}
	return stats
}

func opDelmin(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	refentry, refok := ref.DeleteMin()
	entry, ok := index.DeleteMin()
	if refok != ok {
		log.Fatalf("delmin: expected %v, got %v\n", refok, ok)
	} else if refok && refentry != entry {
		log.Fatalf("delmin: expected %v, got %v\n", refentry, entry)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refentry, entry)
	}
	stats["total"] += 1
	if refok {
		stats["delmin.ok"] += 1
	} else {
		stats["delmin.na"] += 1
	}
	return stats
}

func opDelmax(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	refentry, refok := ref.DeleteMax()
	entry, ok := index.DeleteMax()
	if refok != ok {
		log.Fatalf("delmax: expected %v, got %v\n", refok, ok)
	} else if refok && refentry != entry {
		log.Fatalf("delmax: expected %v, got %v\n", refentry, entry)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refentry, entry)
	}
	stats["total"] += 1
	if refok {
		stats["delmax.ok"] += 1
	} else {
		stats["delmax.na"] += 1
	}
	return stats
}

func opUpsert(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	key, value := int64(cmd[1].(float64)), int64(cmd[2].(float64))
	refold, refupdated := ref.Set(key, value)
	old, updated := index.Set(key, value)
	if refupdated != updated {
		log.Fatalf("upsert(%v): expected %v, got %v\n", key, refupdated, updated)
	} else if refupdated && refold != old {
		log.Fatalf("upsert(%v): expected %v, got %v\n", key, refold, old)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refold, old)
	}
	stats["total"] += 1
	if refupdated {
		stats["upsert.update"] += 1
	} else {
		stats["upsert.insert"] += 1
	}
	return stats
}

func opDelete(
	ref *dict.Dict[int64, int64], index *llrb.LLRB[int64, int64],
	cmd []interface{}, stats map[string]int) map[string]int {

	key := int64(cmd[1].(float64))
	refval, refok := ref.Delete(key)
	val, ok := index.Delete(key)
	if refok != ok {
		log.Fatalf("delete(%v): expected %v, got %v\n", key, refok, ok)
	} else if refok && refval != val {
		log.Fatalf("delete(%v): expected %v, got %v\n", key, refval, val)
	}
	if monsteropts.opdump {
		fmt.Printf("%v | dict:%v llrb:%v\n", cmd, refval, val)
	}
	stats["total"] += 1
	if refok {
		stats["delete.ok"] += 1
	} else {
		stats["delete.na"] += 1
	}
	return stats
}
