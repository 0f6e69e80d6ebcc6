/*
Package markov builds order-k Markov chain models from a small corpus of
sample names and samples new, similar-sounding names from them.

A Corpus is loaded from one name per line, split into symbols by a
Tokenizer, and aggregated into an immutable transition Table. A Generator
wraps the table with an acceptance policy that can reject names copied from
the corpus or repeated within one run. All randomness comes from an explicit
*rand.Rand so that results are reproducible with a fixed seed.
*/
package markov
