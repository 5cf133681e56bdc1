/*
Package xcodeproj manages Xcode project documents (.xcodeproj bundles) as
in-memory object graphs.

A project document is a property list with five top-level entries:
archiveVersion, objectVersion, an opaque classes table, the rootObject
identifier, and an objects dictionary mapping 24-digit hex identifiers to
attribute bags. Each bag carries an isa tag naming its object class
(PBXProject, PBXGroup, PBXFileReference, ...). We load such documents into
a graph of Object values, let you mutate the graph, and serialize it back.

The design revolves around three rules:

1. The document records references as identifiers, and the per-project
object store maps each identifier to exactly one Object. Loading resolves
every identifier through the store as it materializes the bag it appears
in, so shared references become shared pointers without a fix-up pass,
and saving flattens pointers back to identifiers.

2. Every reference mutation goes through the referrer ledger. Each object
tracks the distinct set of objects referencing it; when the last referrer
goes away, the object drops out of the store automatically. There is no
sweep-style garbage collection.

3. The object classes are metadata, not code. A Kind describes which
attributes of a class hold references; the core dispatches on that
metadata and never branches on a specific isa, so embedders can register
additional classes that behave exactly like the built-in ones.

One Project value owns all of its bookkeeping (store, referrer ledger,
identifier pools); nothing is shared between documents. A Project expects
a single mutator at a time and does no locking.

Subpackage projindex maintains a persistent catalog of project bundles for
tooling that works across many projects; subpackage xcworkspace reads and
writes .xcworkspace documents. Neither is needed to use this package.
*/
package xcodeproj
