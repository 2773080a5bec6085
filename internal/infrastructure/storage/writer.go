package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iiroka/netquake2-sub002/internal/domain"
)

const (
	MagicHeader string = `NQJR` // 4 байта
	Version1    uint32 = 1
)

// FileExt - расширение файлов журнала.
const FileExt = ".nqj"

// JournalFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Seed       int64   // 8 байт
	Timestamp  int64   // 8 байт
	Frames     int32   // 4 байта
	EntryCount int32   // 4 байта
}

// EntryHeader - заголовок каждой записи команды.
type EntryHeader struct {
	Frame      int32  // 4
	ActionType uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

// JournalStore пишет и читает журналы команд в каталоге.
type JournalStore struct {
	Dir string
}

func NewJournalStore(dir string) (*JournalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir %s: %w", dir, err)
	}
	return &JournalStore{Dir: dir}, nil
}

// Save пишет журнал в новый файл и возвращает его путь.
func (s *JournalStore) Save(j *domain.Journal) (string, error) {
	filename := fmt.Sprintf("journal_%d_%d%s", j.Seed, j.Timestamp, FileExt)
	path := filepath.Join(s.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, j); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, f.Sync()
}

func writeBinary(w io.Writer, j *domain.Journal) error {
	// 1. Глобальный заголовок
	header := JournalFileHeader{
		Version:    Version1,
		Seed:       j.Seed,
		Timestamp:  j.Timestamp,
		Frames:     int32(j.Frames),
		EntryCount: int32(len(j.Entries)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Команды
	for _, e := range j.Entries {
		tokenBytes := []byte(e.Token)
		if len(tokenBytes) > 255 {
			return fmt.Errorf("token too long: %d", len(tokenBytes))
		}

		payloadLen := len(e.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		entryHeader := EntryHeader{
			Frame:      int32(e.Frame),
			ActionType: uint8(e.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &entryHeader); err != nil {
			return err
		}

		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(e.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
