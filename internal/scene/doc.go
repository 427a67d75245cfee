// Package scene is the host scene-graph collaborator of reconstruction.
//
// Host is the interface the generator materializes objects through. Graph is
// an in-memory Host: objects are addressed by Handle, handles come from a
// monotonic logical clock so creation order is explicit, and every object
// keeps both its world transform and its transform local to its parent.
package scene
