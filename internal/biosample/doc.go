// Package biosample implements the lookup-by-identifier client for the
// remote sample registry. The registry answers each lookup with a
// hierarchical XML document; this package extracts the four-field enrichment
// tuple (isolation source, collection date, geographic location, host) from
// it and leaves normalization to the caller.
package biosample
