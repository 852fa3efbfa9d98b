// Package compress frames a payload as a single self-describing block,
// compressed with LZ4 or Zstandard.
//
// Block layout (little endian):
//
//	[Type uint8][reserved 3 bytes][UncompressedSize uint32][CompressedSize uint32][CRC32C uint32][Data...]
//
// CompressedSize 0 means Data is stored raw because compression did not pay
// off. The checksum covers the uncompressed payload.
package compress
