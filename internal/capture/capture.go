// Package capture loads packet captures and extracts the UDP datagrams that
// the player re-sends.
package capture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/llehouerou/packetplay/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither pcap nor pcapng.
	ErrUnsupportedFormat = errors.New("unsupported capture format")
	// ErrParse is returned when a capture header or record cannot be decoded.
	ErrParse = errors.New("error parsing capture")
	// ErrEmptyRecording is returned when a capture holds no UDP datagrams.
	ErrEmptyRecording = errors.New("recording contains no UDP packets")
)

// Format identifies the container format of a capture file.
type Format string

const (
	FormatPcap   Format = "pcap"
	FormatPcapNG Format = "pcapng"
)

// Packet is one UDP datagram taken from a capture.
type Packet struct {
	Timestamp time.Time
	Payload   []byte
	DstPort   uint16
}

// Recording is a loaded capture, reduced to its UDP datagrams.
type Recording struct {
	Path      string
	Format    Format
	LinkType  layers.LinkType
	Packets   []Packet
	Skipped   int   // records without a UDP layer
	Truncated bool  // file ended inside a record
	Size      int64 // bytes on disk, 0 when read from a stream
}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Open reads the capture at path.
func Open(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Read(f, path)
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err == nil {
		rec.Size = fi.Size()
	}
	return rec, nil
}

// Read parses a capture from r. path is only recorded on the result.
func Read(r io.Reader, path string) (*Recording, error) {
	br := bufio.NewReader(r)
	format, err := detect(br)
	if err != nil {
		return nil, err
	}

	var pr packetReader
	switch format {
	case FormatPcap:
		pr, err = pcapgo.NewReader(br)
	case FormatPcapNG:
		pr, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	rec := &Recording{
		Path:     path,
		Format:   format,
		LinkType: pr.LinkType(),
	}
	if err := rec.load(pr); err != nil {
		return nil, err
	}
	if len(rec.Packets) == 0 {
		return nil, ErrEmptyRecording
	}
	return rec, nil
}

var (
	magicPcapMicroBE = []byte{0xa1, 0xb2, 0xc3, 0xd4}
	magicPcapMicroLE = []byte{0xd4, 0xc3, 0xb2, 0xa1}
	magicPcapNanoBE  = []byte{0xa1, 0xb2, 0x3c, 0x4d}
	magicPcapNanoLE  = []byte{0x4d, 0x3c, 0xb2, 0xa1}
	magicPcapNG      = []byte{0x0a, 0x0d, 0x0d, 0x0a}
)

func detect(br *bufio.Reader) (Format, error) {
	magic, err := br.Peek(4)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	switch {
	case bytes.Equal(magic, magicPcapMicroBE),
		bytes.Equal(magic, magicPcapMicroLE),
		bytes.Equal(magic, magicPcapNanoBE),
		bytes.Equal(magic, magicPcapNanoLE):
		return FormatPcap, nil
	case bytes.Equal(magic, magicPcapNG):
		return FormatPcapNG, nil
	}
	return "", fmt.Errorf("%w: magic %x", ErrUnsupportedFormat, magic)
}

func (rec *Recording) load(pr packetReader) error {
	ng, _ := pr.(*pcapgo.NgReader)
	for {
		data, ci, err := pr.ReadPacketData()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			rec.Truncated = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrParse, len(rec.Packets)+rec.Skipped, err)
		}

		linkType := pr.LinkType()
		if ng != nil {
			if iface, err := ng.Interface(ci.InterfaceIndex); err == nil {
				linkType = iface.LinkType
			}
		}

		pkt, ok := decodeUDP(data, linkType)
		if !ok {
			rec.Skipped++
			continue
		}
		pkt.Timestamp = ci.Timestamp
		rec.Packets = append(rec.Packets, pkt)
	}
}

func decodeUDP(data []byte, linkType layers.LinkType) (Packet, bool) {
	decoded := gopacket.NewPacket(data, linkType, gopacket.Lazy)
	layer := decoded.Layer(layers.LayerTypeUDP)
	if layer == nil {
		return Packet{}, false
	}
	udp, ok := layer.(*layers.UDP)
	if !ok {
		return Packet{}, false
	}
	return Packet{
		Payload: bytes.Clone(udp.Payload),
		DstPort: uint16(udp.DstPort),
	}, true
}

// Len returns the number of UDP packets.
func (rec *Recording) Len() int {
	return len(rec.Packets)
}

// Start returns the capture time of the first packet.
func (rec *Recording) Start() time.Time {
	if len(rec.Packets) == 0 {
		return time.Time{}
	}
	return rec.Packets[0].Timestamp
}

// End returns the capture time of the last packet.
func (rec *Recording) End() time.Time {
	if len(rec.Packets) == 0 {
		return time.Time{}
	}
	return rec.Packets[len(rec.Packets)-1].Timestamp
}

// Duration returns the time between the first and the last packet.
func (rec *Recording) Duration() time.Duration {
	return max(rec.End().Sub(rec.Start()), 0)
}

// Offset returns how long after the first packet packet i was captured.
// Out-of-order timestamps are clamped to zero.
func (rec *Recording) Offset(i int) time.Duration {
	return max(rec.Packets[i].Timestamp.Sub(rec.Start()), 0)
}

// Info returns the front-end description of the recording.
func (rec *Recording) Info() model.RecordingInfo {
	return model.NewRecordingInfo(rec.Path)
}
