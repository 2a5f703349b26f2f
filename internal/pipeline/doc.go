// Package pipeline runs the two bulk workloads of the tool on a worker pool:
// hashing sequence files into user bins (HashBins) and querying reads
// against a filter (Search). Both honour context cancellation and return the
// first error encountered.
//
// Search only depends on the Membership contract, so tests can swap the
// filter for a fake.
package pipeline
