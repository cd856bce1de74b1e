package client

// Package client implements the WebODM REST transport: session and token
// handling, project and task CRUD, the chunked task-creation protocol
// (create shell, upload per image, commit), asset download streaming, and
// completion polling. It is the single point of contact with the server;
// response shapes are normalized here so callers only see domain types.
