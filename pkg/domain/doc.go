/*
Package domain contains the data model shared by the indicator defaulting
engine and its adapters.

Defaulting itself works on untyped trees (map[string]any) because input is
sparse and frequently malformed. The types here are the typed views decoded
from a resolved tree, plus the layout context a pass reads from and the
hooks it reports to.

# Key Entities

  - Layout: the surrounding chart context (font, paper color, grid, template).
  - Trace: the typed read-only view of one resolved indicator.
  - Axis: one resolved linear axis (number, delta or gauge).
  - Document: a layout plus the raw traces loaded from a file or workspace.
  - LifecycleHooks: callbacks fired around each defaulting pass.
*/
package domain
