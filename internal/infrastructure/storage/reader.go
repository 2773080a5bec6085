package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iiroka/netquake2-sub002/internal/domain"
)

var ErrBadMagic = errors.New("not a journal file")

func (s *JournalStore) Load(path string) (*domain.Journal, error) {
	return LoadFile(path)
}

// LoadFile читает журнал по полному пути (флаг -replay).
func LoadFile(path string) (*domain.Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.Journal, error) {
	// 1. Читаем заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrBadMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.EntryCount < 0 {
		return nil, fmt.Errorf("negative entry count: %d", header.EntryCount)
	}

	j := &domain.Journal{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Frames:    int(header.Frames),
		Entries:   make([]domain.JournalEntry, 0, header.EntryCount),
	}

	// 2. Читаем команды
	for i := 0; i < int(header.EntryCount); i++ {
		var eh EntryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		e := domain.JournalEntry{
			Frame:  int(eh.Frame),
			Action: domain.ActionType(eh.ActionType),
		}

		tokenBuf := make([]byte, eh.TokenLen)
		if _, err := io.ReadFull(r, tokenBuf); err != nil {
			return nil, fmt.Errorf("entry %d token: %w", i, err)
		}
		e.Token = string(tokenBuf)

		if eh.PayloadLen > 0 {
			e.Payload = make([]byte, eh.PayloadLen)
			if _, err := io.ReadFull(r, e.Payload); err != nil {
				return nil, fmt.Errorf("entry %d payload: %w", i, err)
			}
		}

		j.Entries = append(j.Entries, e)
	}

	return j, nil
}
