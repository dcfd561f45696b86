// Package normalize reduces raw registry metadata values to the canonical
// forms used for aggregation: collection dates to 4-digit years, geographic
// locations to leading country tokens, and blank or unknown values to the
// "absent" sentinel. All functions are pure.
package normalize
