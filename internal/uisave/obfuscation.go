// Package uisave reads the client's UI save container: a fixed file header
// followed by a list of XOR-obfuscated, length-prefixed sections.
package uisave

// ObfuscationKey is the byte every container byte is XORed with.
const ObfuscationKey byte = 0x31

// Deobfuscate returns a copy of data with the container obfuscation removed.
// The transform is its own inverse, so it also obfuscates.
func Deobfuscate(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ ObfuscationKey
	}
	return out
}
