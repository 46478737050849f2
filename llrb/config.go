package llrb

import s "github.com/bnclabs/gosettings"

// Defaultsettings for llrb instance.
//
// "selfcheck" (bool, default: false)
//      Run the full invariant oracle after every mutating call,
//      panics on the first violated invariant. Meant for testing,
//      every mutation becomes a O(n) operation.
//
// "maxheight.factor" (float64, default: 2.0)
//      Breathing space multiplier over log2(entries) allowed for the
//      tree height before Validate() complains.
//
func Defaultsettings() s.Settings {
	setts := s.Settings{
		"selfcheck":        false,
		"maxheight.factor": 2.0,
	}
	return setts
}
