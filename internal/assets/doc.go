// Package assets supplies the wrapper template and theme styles that dress
// pasted HTML before papyrus opens it.
//
// Two loaders implement AssetLoader. EmbeddedLoader reads the files compiled
// into the binary. FilesystemLoader reads a user directory with the same
// layout:
//
//	styles/<theme>.css
//	templates/wrapper.html
//
// AssetResolver chains them so a user directory overrides individual files
// and everything else falls back to the built-ins.
//
// Names are restricted to ASCII letters, digits, '-' and '_'. The filesystem
// loader also refuses files whose resolved path leaves its root.
package assets
