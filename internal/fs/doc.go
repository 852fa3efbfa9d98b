// Package fs abstracts the filesystem operations of the local blob store so
// tests can inject I/O failures.
//
//   - [LocalFS]: production implementation on the os package
//   - [FaultyFS]: wrapper that fails writes, syncs, closes or renames
//
// Production code uses fs.Default:
//
//	f, err := fs.Default.CreateTemp(dir, ".tmp-*")
//
// Tests wrap it:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//
// Operations take no context: local syscalls are short and not interruptible.
package fs
