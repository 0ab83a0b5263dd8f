// Package lua runs user-supplied Lua scripts as computed replacements.
//
// A script defines a global function replace(text, id) that receives the
// mentioned text and the annotation ID and returns the text to render:
//
//	function replace(text, id)
//	    return "[" .. string.upper(text) .. "](" .. id .. ")"
//	end
//
// # Sandbox
//
// Scripts run in a restricted state:
//   - Only the base, table, string and math libraries are opened
//   - dofile, loadfile, load, loadstring and require are removed
//   - print writes to a configurable writer instead of stdout
//   - Every call runs under an execution timeout
//
// # Errors
//
// Rendering cannot fail on a replacement, so a Computed obtained from
// Script.Replacement returns the matched text unchanged when the script
// errors, and reports the error through the script's error handler.
package lua
