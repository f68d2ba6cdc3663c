/*
Package ports defines the driven ports (interfaces) of the indicator front ends.

These interfaces decouple the command line, HTTP and MCP surfaces from where
documents are stored, allowing them to work with a loam workspace, Redis or an
in-memory set.

# Key Interfaces

  - DocumentSource: looks documents up by id and lists them.
  - DocumentStore: a DocumentSource that also saves and deletes.
*/
package ports
