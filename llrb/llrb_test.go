package llrb

import "math/rand"
import "testing"

import "github.com/bnclabs/gotree/api"
import "github.com/bnclabs/gotree/dict"

var _ api.Index[int64, int64] = (*LLRB[int64, int64])(nil)

func TestLLRBEmpty(t *testing.T) {
	llrb := NewLLRB[string, int]("empty", Defaultsettings())
	defer llrb.Destroy()

	if llrb.ID() != "empty" {
		t.Errorf("unexpected %v", llrb.ID())
	} else if llrb.Count() != 0 {
		t.Errorf("unexpected %v", llrb.Count())
	} else if llrb.Isactive() == false {
		t.Errorf("unexpected inactive tree")
	}

	if _, ok := llrb.Get("missing"); ok {
		t.Errorf("unexpected entry for missing key")
	}
	if _, ok := llrb.Min(); ok {
		t.Errorf("unexpected Min() on empty tree")
	}
	if _, ok := llrb.Max(); ok {
		t.Errorf("unexpected Max() on empty tree")
	}
	if _, ok := llrb.Floor("a"); ok {
		t.Errorf("unexpected Floor() on empty tree")
	}
	if _, ok := llrb.Ceiling("a"); ok {
		t.Errorf("unexpected Ceiling() on empty tree")
	}
	if _, ok := llrb.Select(0); ok {
		t.Errorf("unexpected Select() on empty tree")
	}
	if x := llrb.Rank("a"); x != 0 {
		t.Errorf("unexpected %v", x)
	}

	// delete variants must tolerate an empty tree.
	if _, deleted := llrb.Delete("missing"); deleted {
		t.Errorf("unexpected delete on empty tree")
	}
	if _, ok := llrb.DeleteMin(); ok {
		t.Errorf("unexpected DeleteMin() on empty tree")
	}
	if _, ok := llrb.DeleteMax(); ok {
		t.Errorf("unexpected DeleteMax() on empty tree")
	}

	llrb.Validate()

	stats := llrb.Stats()
	if x := stats["n_count"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_deletes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_nodes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	}
	if entries := llrb.InOrder(); len(entries) != 0 {
		t.Errorf("unexpected %v", len(entries))
	}
}

func loadsearchtree(tb testing.TB) *LLRB[string, int] {
	setts := Defaultsettings()
	setts["selfcheck"] = true
	llrb := NewLLRB[string, int]("search", setts)
	for i, key := range []string{"S", "E", "X", "A", "R", "C", "H", "M"} {
		if _, updated := llrb.Set(key, i+1); updated {
			tb.Errorf("unexpected update for key %v", key)
		}
	}
	return llrb
}

func TestLLRBLoad(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	if llrb.Count() != 8 {
		t.Errorf("unexpected %v", llrb.Count())
	}
	for i, key := range []string{"S", "E", "X", "A", "R", "C", "H", "M"} {
		if value, ok := llrb.Get(key); !ok {
			t.Errorf("expected key %v", key)
		} else if value != i+1 {
			t.Errorf("expected %v, got %v, key %v", i+1, value, key)
		}
	}
	// overwrite a key
	if oldvalue, updated := llrb.Set("E", 100); !updated {
		t.Errorf("expected update for key E")
	} else if oldvalue != 2 {
		t.Errorf("expected %v, got %v", 2, oldvalue)
	}
	if value, ok := llrb.Get("E"); !ok || value != 100 {
		t.Errorf("unexpected %v %v", value, ok)
	}
	if llrb.Count() != 8 {
		t.Errorf("unexpected %v", llrb.Count())
	}

	stats := llrb.Stats()
	if x := stats["n_inserts"].(int64); x != 8 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_updates"].(int64); x != 1 {
		t.Errorf("unexpected %v", x)
	}
	llrb.Log()
}

func TestLLRBSearches(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	if entry, ok := llrb.Min(); !ok || entry.Key != "A" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if entry, ok := llrb.Max(); !ok || entry.Key != "X" {
		t.Errorf("unexpected %v %v", entry, ok)
	}

	// keys not present in the tree.
	if entry, ok := llrb.Floor("J"); !ok || entry.Key != "H" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if entry, ok := llrb.Ceiling("J"); !ok || entry.Key != "M" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	// keys present in the tree bound themselves.
	if entry, ok := llrb.Floor("R"); !ok || entry.Key != "R" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if entry, ok := llrb.Ceiling("R"); !ok || entry.Key != "R" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	// no bound on either extreme.
	if _, ok := llrb.Floor("@"); ok {
		t.Errorf("unexpected floor below the minimum key")
	}
	if _, ok := llrb.Ceiling("Z"); ok {
		t.Errorf("unexpected ceiling above the maximum key")
	}

	ordered := []string{"A", "C", "E", "H", "M", "R", "S", "X"}
	for k, key := range ordered {
		if entry, ok := llrb.Select(int64(k)); !ok {
			t.Errorf("expected entry at rank %v", k)
		} else if entry.Key != key {
			t.Errorf("expected %v, got %v, rank %v", key, entry.Key, k)
		}
		if x := llrb.Rank(key); x != int64(k) {
			t.Errorf("expected %v, got %v, key %v", k, x, key)
		}
	}
	if entry, ok := llrb.Select(5); !ok || entry.Key != "R" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if x := llrb.Rank("R"); x != 5 {
		t.Errorf("unexpected %v", x)
	}
	if _, ok := llrb.Select(8); ok {
		t.Errorf("unexpected entry at rank 8")
	}
	if _, ok := llrb.Select(-1); ok {
		t.Errorf("unexpected entry at rank -1")
	}
	// rank of keys not in the tree.
	if x := llrb.Rank("J"); x != 4 {
		t.Errorf("unexpected %v", x)
	}
	if x := llrb.Rank("@"); x != 0 {
		t.Errorf("unexpected %v", x)
	}
	if x := llrb.Rank("Z"); x != 8 {
		t.Errorf("unexpected %v", x)
	}
}

func TestLLRBDeleteMin(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	if entry, ok := llrb.DeleteMin(); !ok || entry.Key != "A" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if llrb.Count() != 7 {
		t.Errorf("unexpected %v", llrb.Count())
	}
	if _, ok := llrb.Get("A"); ok {
		t.Errorf("unexpected entry for key A")
	}
	if entry, ok := llrb.Min(); !ok || entry.Key != "C" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
}

func TestLLRBDeleteMax(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	if entry, ok := llrb.DeleteMax(); !ok || entry.Key != "X" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
	if llrb.Count() != 7 {
		t.Errorf("unexpected %v", llrb.Count())
	}
	if entry, ok := llrb.Max(); !ok || entry.Key != "S" {
		t.Errorf("unexpected %v %v", entry, ok)
	}
}

func TestLLRBDelete(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	// deleting a missing key is a no-op.
	before := llrb.InOrder()
	if _, deleted := llrb.Delete("J"); deleted {
		t.Errorf("unexpected delete for missing key")
	}
	if llrb.Count() != 8 {
		t.Errorf("unexpected %v", llrb.Count())
	}
	after := llrb.InOrder()
	if len(before) != len(after) {
		t.Errorf("unexpected %v, got %v", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("expected %v, got %v", before[i], after[i])
		}
	}

	// delete keys one by one, tree must stay sorted and shrink by
	// exactly one entry every time.
	for i, key := range []string{"M", "A", "X", "S", "C", "R", "H", "E"} {
		if value, deleted := llrb.Delete(key); !deleted {
			t.Errorf("expected key %v", key)
		} else if value == 0 {
			t.Errorf("unexpected zero value for key %v", key)
		}
		if x := llrb.Count(); x != int64(8-i-1) {
			t.Errorf("expected %v, got %v", 8-i-1, x)
		}
		if _, ok := llrb.Get(key); ok {
			t.Errorf("unexpected entry for key %v", key)
		}
		entries := llrb.InOrder()
		for j := 1; j < len(entries); j++ {
			if entries[j-1].Key >= entries[j].Key {
				t.Errorf("sort order %v >= %v", entries[j-1].Key, entries[j].Key)
			}
		}
	}
	if llrb.Count() != 0 {
		t.Errorf("unexpected %v", llrb.Count())
	}
	if _, ok := llrb.DeleteMin(); ok {
		t.Errorf("unexpected DeleteMin() on empty tree")
	}
}

func TestLLRBClone(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	clone := llrb.Clone("search-clone")
	defer clone.Destroy()

	if clone.ID() != "search-clone" {
		t.Errorf("unexpected %v", clone.ID())
	} else if clone.Count() != llrb.Count() {
		t.Errorf("unexpected %v", clone.Count())
	}
	clone.Validate()

	// mutating the original does not touch the clone.
	llrb.Delete("M")
	llrb.Set("Z", 1000)
	if clone.Count() != 8 {
		t.Errorf("unexpected %v", clone.Count())
	}
	if _, ok := clone.Get("M"); !ok {
		t.Errorf("expected key M in clone")
	}
	if _, ok := clone.Get("Z"); ok {
		t.Errorf("unexpected key Z in clone")
	}
	clone.Validate()
	llrb.Validate()
}

func TestLLRBRandom(t *testing.T) {
	setts := Defaultsettings()
	setts["selfcheck"] = true
	llrb := NewLLRB[int64, int64]("random", setts)
	defer llrb.Destroy()
	d := dict.NewDict[int64, int64]("random-ref")
	defer d.Destroy()

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		key := rnd.Int63n(512)
		switch x := rnd.Intn(10); {
		case x < 6:
			value := rnd.Int63()
			old1, upd1 := llrb.Set(key, value)
			old2, upd2 := d.Set(key, value)
			if upd1 != upd2 || old1 != old2 {
				t.Fatalf("Set(%v) {%v,%v}, expected {%v,%v}",
					key, old1, upd1, old2, upd2)
			}
		case x < 8:
			val1, del1 := llrb.Delete(key)
			val2, del2 := d.Delete(key)
			if del1 != del2 || val1 != val2 {
				t.Fatalf("Delete(%v) {%v,%v}, expected {%v,%v}",
					key, val1, del1, val2, del2)
			}
		case x < 9:
			e1, ok1 := llrb.DeleteMin()
			e2, ok2 := d.DeleteMin()
			if ok1 != ok2 || e1 != e2 {
				t.Fatalf("DeleteMin() {%v,%v}, expected {%v,%v}",
					e1, ok1, e2, ok2)
			}
		default:
			e1, ok1 := llrb.DeleteMax()
			e2, ok2 := d.DeleteMax()
			if ok1 != ok2 || e1 != e2 {
				t.Fatalf("DeleteMax() {%v,%v}, expected {%v,%v}",
					e1, ok1, e2, ok2)
			}
		}

		if x, y := llrb.Count(), d.Count(); x != y {
			t.Fatalf("Count() %v, expected %v", x, y)
		}

		probe := rnd.Int63n(512)
		e1, ok1 := llrb.Floor(probe)
		e2, ok2 := d.Floor(probe)
		if ok1 != ok2 || e1 != e2 {
			t.Fatalf("Floor(%v) {%v,%v}, expected {%v,%v}",
				probe, e1, ok1, e2, ok2)
		}
		e1, ok1 = llrb.Ceiling(probe)
		e2, ok2 = d.Ceiling(probe)
		if ok1 != ok2 || e1 != e2 {
			t.Fatalf("Ceiling(%v) {%v,%v}, expected {%v,%v}",
				probe, e1, ok1, e2, ok2)
		}
		if x, y := llrb.Rank(probe), d.Rank(probe); x != y {
			t.Fatalf("Rank(%v) %v, expected %v", probe, x, y)
		}

		if i%500 == 0 {
			verifyinorder(t, llrb, d)
		}
	}
	verifyinorder(t, llrb, d)

	// floor and ceiling bracket the probe when both exist, and
	// rank o select is the identity.
	for k := int64(0); k < llrb.Count(); k++ {
		entry, ok := llrb.Select(k)
		if !ok {
			t.Fatalf("expected entry at rank %v", k)
		}
		if x := llrb.Rank(entry.Key); x != k {
			t.Fatalf("Rank(Select(%v)) == %v", k, x)
		}
	}
	for i := 0; i < 100; i++ {
		probe := rnd.Int63n(512)
		fe, fok := llrb.Floor(probe)
		ce, cok := llrb.Ceiling(probe)
		if fok && fe.Key > probe {
			t.Fatalf("floor %v > %v", fe.Key, probe)
		}
		if cok && ce.Key < probe {
			t.Fatalf("ceiling %v < %v", ce.Key, probe)
		}
	}
}

func verifyinorder(
	t *testing.T, llrb *LLRB[int64, int64], d *dict.Dict[int64, int64]) {

	t.Helper()

	entries, ref := llrb.InOrder(), d.InOrder()
	if len(entries) != len(ref) {
		t.Fatalf("InOrder() %v entries, expected %v", len(entries), len(ref))
	}
	for i := range ref {
		if entries[i] != ref[i] {
			t.Fatalf("InOrder() %v, expected %v", entries[i], ref[i])
		}
	}
	if x := int64(len(entries)); x != size(llrb.root) {
		t.Fatalf("root size %v, expected %v", size(llrb.root), x)
	}
}

func TestLLRBDotdump(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	buf := &dotbuffer{}
	llrb.Dotdump(buf)
	s := string(buf.text)
	if len(s) == 0 {
		t.Errorf("empty dot script")
	}
	if s[:13] != "digraph llrb " {
		t.Errorf("unexpected %q", s[:13])
	}
}

type dotbuffer struct {
	text []byte
}

func (b *dotbuffer) Write(p []byte) (int, error) {
	b.text = append(b.text, p...)
	return len(p), nil
}

func TestLLRBFullstats(t *testing.T) {
	llrb := loadsearchtree(t)
	defer llrb.Destroy()

	stats := llrb.Fullstats()
	if x := stats["n_blacks"].(int64); x <= 0 {
		t.Errorf("unexpected %v", x)
	}
	h_height := stats["h_height"].(map[string]interface{})
	if x := h_height["samples"].(int64); x != llrb.Count() {
		t.Errorf("expected %v, got %v", llrb.Count(), x)
	}
}

func BenchmarkLLRBSet(b *testing.B) {
	llrb := NewLLRB[int64, int64]("bench-set", Defaultsettings())
	defer llrb.Destroy()
	rnd := rand.New(rand.NewSource(99))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Set(rnd.Int63(), int64(i))
	}
}

func BenchmarkLLRBGet(b *testing.B) {
	llrb := NewLLRB[int64, int64]("bench-get", Defaultsettings())
	defer llrb.Destroy()
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 100000; i++ {
		llrb.Set(rnd.Int63n(100000), int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Get(rnd.Int63n(100000))
	}
}

func BenchmarkLLRBDelete(b *testing.B) {
	llrb := NewLLRB[int64, int64]("bench-del", Defaultsettings())
	defer llrb.Destroy()
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < b.N; i++ {
		llrb.Set(rnd.Int63n(int64(b.N)+1), int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Delete(rnd.Int63n(int64(b.N) + 1))
	}
}
