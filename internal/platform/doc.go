package platform

// Package platform holds filesystem helpers shared by the transport and
// workflow layers: filename sanitization for server-supplied names, MIME
// detection for uploads, and directory/existence utilities.
