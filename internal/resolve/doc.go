// Package resolve picks the articulation set for an observed track name.
//
// Matching is caseless substring containment in either direction: the
// candidate name may contain the track name or the track name may contain the
// candidate name. Among matches, the first forward match (candidate contains
// track) wins; otherwise the first containment match in catalogue order.
//
// The Resolver layers a session cache over the catalogue, preferring an
// already-loaded set whose name still matches the new track, and guards
// against late-arriving results: a resolution issued for a track that is no
// longer current is discarded rather than applied.
package resolve
