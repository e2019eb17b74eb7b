package harness

// Bit-serial CRC-16 used to verify benchmark output. The algorithm is kept in
// its classic serial form rather than a table-driven one so the checksum stays
// identical to the reference harness across word sizes and endianness.

// CRC8 folds one byte into the running CRC.
func CRC8(data uint8, crc uint16) uint16 {
	var carry uint16
	for i := 0; i < 8; i++ {
		x16 := uint16(data&1) ^ (crc & 1)
		data >>= 1
		if x16 == 1 {
			crc ^= 0x4002
			carry = 1
		} else {
			carry = 0
		}
		crc >>= 1
		if carry == 1 {
			crc |= 0x8000
		} else {
			crc &= 0x7fff
		}
	}
	return crc
}

// CRC16 folds a 16-bit word into the running CRC, low byte first.
func CRC16(data uint16, crc uint16) uint16 {
	crc = CRC8(uint8(data), crc)
	crc = CRC8(uint8(data>>8), crc)
	return crc
}

// CRCS16 folds a signed 16-bit sample, reinterpreted as its two's-complement
// bit pattern.
func CRCS16(data int16, crc uint16) uint16 {
	return CRC16(uint16(data), crc)
}

// CRCBlock folds a whole sample block into the running CRC in index order.
func CRCBlock(data []int16, crc uint16) uint16 {
	for _, v := range data {
		crc = CRCS16(v, crc)
	}
	return crc
}
