package redis

const (
	// KeyPrefix namespaces every key written by the service
	KeyPrefix = "coursesite:"
	// KeyCurrentSnapshot holds the last published snapshot as JSON
	KeyCurrentSnapshot = KeyPrefix + "snapshot:current"
	// KeyPrefixSnapshot is the prefix for snapshots kept by revision
	KeyPrefixSnapshot = KeyPrefix + "snapshot:"
	// KeyRevisions is the list of recent revisions, newest first
	KeyRevisions = KeyPrefix + "revisions"
	// KeyPrefixExport is the prefix for exported generator artifacts
	KeyPrefixExport = KeyPrefix + "export:"
)

// SnapshotKey returns the Redis key of a snapshot by revision
func SnapshotKey(revision string) string {
	return KeyPrefixSnapshot + revision
}

// ExportKey returns the Redis key of an exported artifact
// Example: coursesite:export:sidebars.json
func ExportKey(name string) string {
	return KeyPrefixExport + name
}
