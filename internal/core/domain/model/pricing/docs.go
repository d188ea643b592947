// Package pricing provides the flat-rate tier reference data and the
// side-effect-free quote estimate used by the pricing workflow.
//
// A Tier is keyed by location (country, city) and an inclusive volume range;
// the resolver finds the single tier containing a given volume. Estimate
// derives a client-facing total from a base price and margin percent. All
// amounts are decimal-exact to two places.
package pricing
