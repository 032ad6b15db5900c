// Package search implements hybrid note search.
//
// A query runs through two stages. Stage one is a cheap case-insensitive
// substring match over title, summary, tags, raw content, URL, and
// source platform; any hit short-circuits the search. Stage two, used
// only when stage one comes back empty, digests the owner's recent
// notes into compact one-liners and asks the AI ranker which of them
// answer the query. Ranker failures degrade to an empty result; only
// storage failures surface as errors.
package search
