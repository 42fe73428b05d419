// Package config resolves, loads and persists the two configuration layers:
// the global rc file under the home directory (~/.ncurc) and the local file
// under the working directory (.ncu/config).
//
// Both layers are flat JSON objects. The local layer wins key by key when the
// two are merged. Writes replace a layer in full; Update is the only
// key-preserving mutation and is a plain read-modify-write with no locking.
package config
