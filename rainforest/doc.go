// Package rainforest implements the RainForest proof-of-work hash.
//
// RainForest uses native integer operations which are fast on 64-bit processors,
// and a 16 KiB rambox that is read and rewritten at data dependent positions on
// every mixing round. Each round depends on the previous round's memory read, so
// the cost is bound by L1 cache latency, favoring CPUs (including low-power ARM
// cores) over GPUs with small shared L1 caches and FPGAs/ASICs that cannot
// provide low-latency memory cheaply. The AES round and CRC32C instructions are
// used as mixing primitives, both are cheap on CPUs with the relevant extensions.
//
// Absorption (Update) only touches the State. Finalize pads the message, runs
// MixRounds rounds against a caller owned Rambox and compresses the accumulator
// into a 32-byte digest. Since the rambox keeps every change, digests are only
// reproducible from a freshly initialized rambox; see Journal to undo changes.
//
// This is not a general purpose cryptographic hash.
package rainforest
