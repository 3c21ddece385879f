/*
Package amber reads Amber ASCII trajectories (TRJ/mdcrd), plain or
compressed (gzip, bzip2 or zstd, detected from the file's leading bytes).

The format is a title line followed by frames of fixed-width coordinates,
10 floats of 8 characters per line, plus one optional line of 3 box
lengths per frame when the system is periodic. The format does not
declare its atom count: it must come from the topology, which is why
New takes it explicitly.

Because every record has a fixed width, the byte offset of any frame is
computable, and Seek gives random access in O(1) even though the file is
text. Over compressed input a seek decompresses from the start and
discards, which is transparent but not free.

The reader keeps a single Timestep that is overwritten in place on every
advance; see Timestep for the aliasing rules.
*/
package amber
