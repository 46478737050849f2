package llrb

import "cmp"

import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/gotree/lib"

// bookkeeping counters, maintained by the write path.
type llrbstats struct {
	n_count   int64 // number of entries in the tree
	n_inserts int64
	n_updates int64
	n_deletes int64
	n_nodes   int64
	n_frees   int64
}

func (llrb *LLRB[K, V]) upsertcounts(updated bool) {
	if updated {
		llrb.n_updates++
		return
	}
	llrb.n_count++
	llrb.n_inserts++
}

func (llrb *LLRB[K, V]) delcounts() {
	llrb.n_count--
	llrb.n_deletes++
}

// Stats return a map of data-structure statistics and operation
// counts.
func (llrb *LLRB[K, V]) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"n_count":       llrb.n_count,
		"n_inserts":     llrb.n_inserts,
		"n_updates":     llrb.n_updates,
		"n_deletes":     llrb.n_deletes,
		"n_nodes":       llrb.n_nodes,
		"n_frees":       llrb.n_frees,
		"h_upsertdepth": llrb.h_upsertdepth.Fullstats(),
	}
	return stats
}

// Fullstats includes Stats() and walks the entire tree to gather the
// height histogram and the black-link depth. Expensive, never call
// this on the hot path.
func (llrb *LLRB[K, V]) Fullstats() map[string]interface{} {
	stats := llrb.Stats()

	h_height := lib.NewhistorgramInt64(1, 256, 1)
	heightstats(llrb.root, 1 /*depth*/, h_height)
	stats["h_height"] = h_height.Fullstats()
	stats["n_blacks"] = countblacks(llrb.root, 0)
	return stats
}

func heightstats[K cmp.Ordered, V any](
	nd *Llrbnode[K, V], depth int64, h *lib.HistogramInt64) {

	if nd == nil {
		return
	}
	h.Add(depth)
	heightstats(nd.left, depth+1, h)
	heightstats(nd.right, depth+1, h)
}

// count of black links from root to the left-most null, same on
// every path when the tree is balanced.
func countblacks[K cmp.Ordered, V any](nd *Llrbnode[K, V], count int64) int64 {
	if nd == nil {
		return count
	}
	if !isred(nd) {
		count++
	}
	return countblacks(nd.left, count)
}

// Log vital statistics through the llrb logger.
func (llrb *LLRB[K, V]) Log() {
	lprefix := llrb.logprefix
	infof("%v entries: %v\n", lprefix, humanize.Comma(llrb.n_count))
	fmsg := "%v inserts: %v, updates: %v, deletes: %v\n"
	infof(
		fmsg, lprefix, humanize.Comma(llrb.n_inserts),
		humanize.Comma(llrb.n_updates), humanize.Comma(llrb.n_deletes),
	)
	fmsg = "%v nodes: %v, frees: %v\n"
	infof(
		fmsg, lprefix,
		humanize.Comma(llrb.n_nodes), humanize.Comma(llrb.n_frees),
	)
	infof("%v h_upsertdepth: %v\n", lprefix, llrb.h_upsertdepth.Logstring())
}
