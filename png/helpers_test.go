package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// appendChunk frames data as a chunk with a valid CRC.
func appendChunk(buf *bytes.Buffer, typ string, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(typ)
	buf.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
}

func ihdrData(width, height uint32) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	copy(data[8:], []byte{8, 6, 0, 0, 0})
	return data
}

// minimalPNG is a signature, IHDR and IEND.
func minimalPNG(width, height uint32) []byte {
	var buf bytes.Buffer
	buf.Write(Signature)
	appendChunk(&buf, "IHDR", ihdrData(width, height))
	appendChunk(&buf, "IEND", nil)
	return buf.Bytes()
}
