package core

// Location is the byte range of one value inside the current log file.
//
// The log itself carries no framing, so a Location is the only way to find
// a value again. Losing the KeyDir loses the ability to parse the log.
type Location struct {
	Offset uint64 // Byte offset in the log file where the value starts
	Length int    // Number of bytes the backend reported writing
}

// End returns the offset just past the value.
func (l Location) End() uint64 {
	return l.Offset + uint64(l.Length)
}

// KeyDir is the in-memory index mapping keys to the location of their most
// recent value.
//
// Deleted keys are simply absent; there are no tombstones. Every Location
// points into the log file the engine currently owns.
type KeyDir map[string]Location

// LiveBytes returns the total length of all indexed values.
func (kd KeyDir) LiveBytes() uint64 {
	var total uint64
	for _, loc := range kd {
		total += uint64(loc.Length)
	}
	return total
}
