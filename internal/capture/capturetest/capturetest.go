// Package capturetest synthesizes capture files for tests.
package capturetest

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/llehouerou/packetplay/internal/capture"
)

// Frame is one packet to write. A zero DstPort produces a TCP segment,
// which the loader is expected to skip.
type Frame struct {
	At      time.Duration // offset from the capture start
	Payload []byte
	DstPort uint16
}

// Epoch is the timestamp of a frame with At == 0.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// UDP returns count UDP frames spaced by gap with payloads "pkt-<n>".
func UDP(count int, gap time.Duration) []Frame {
	frames := make([]Frame, count)
	for i := range frames {
		frames[i] = Frame{
			At:      time.Duration(i) * gap,
			Payload: []byte{'p', 'k', 't', '-', byte('0' + i%10)},
			DstPort: 3000,
		}
	}
	return frames
}

// Ethernet builds an Ethernet/IPv4/UDP (or TCP) frame.
func Ethernet(t testing.TB, f Frame) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version: 4,
		IHL:     5,
		TTL:     64,
		SrcIP:   net.IPv4(10, 0, 0, 1),
		DstIP:   net.IPv4(10, 0, 0, 255),
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	var err error
	if f.DstPort == 0 {
		ip.Protocol = layers.IPProtocolTCP
		tcp := &layers.TCP{SrcPort: 40000, DstPort: 80, Seq: 1, ACK: true, Window: 1024}
		if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
			t.Fatalf("tcp checksum layer: %v", err)
		}
		err = gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(f.Payload))
	} else {
		ip.Protocol = layers.IPProtocolUDP
		udp := &layers.UDP{SrcPort: 3000, DstPort: layers.UDPPort(f.DstPort)}
		if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
			t.Fatalf("udp checksum layer: %v", err)
		}
		err = gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(f.Payload))
	}
	if err != nil {
		t.Fatalf("serialize frame: %v", err)
	}
	return buf.Bytes()
}

func captureInfo(at time.Duration, data []byte) gopacket.CaptureInfo {
	return gopacket.CaptureInfo{
		Timestamp:     Epoch.Add(at),
		CaptureLength: len(data),
		Length:        len(data),
	}
}

// Pcap encodes frames as a classic microsecond pcap file.
func Pcap(t testing.TB, frames []Frame) []byte {
	t.Helper()

	var out bytes.Buffer
	w := pcapgo.NewWriter(&out)
	if err := w.WriteFileHeader(65535, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("pcap header: %v", err)
	}
	for _, f := range frames {
		data := Ethernet(t, f)
		if err := w.WritePacket(captureInfo(f.At, data), data); err != nil {
			t.Fatalf("pcap packet: %v", err)
		}
	}
	return out.Bytes()
}

// PcapNG encodes frames as a pcapng file with a single Ethernet interface.
func PcapNG(t testing.TB, frames []Frame) []byte {
	t.Helper()

	var out bytes.Buffer
	w, err := pcapgo.NewNgWriter(&out, layers.LinkTypeEthernet)
	if err != nil {
		t.Fatalf("pcapng writer: %v", err)
	}
	for _, f := range frames {
		data := Ethernet(t, f)
		if err := w.WritePacket(captureInfo(f.At, data), data); err != nil {
			t.Fatalf("pcapng packet: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("pcapng flush: %v", err)
	}
	return out.Bytes()
}

// WriteFile writes data into a temp dir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write capture: %v", err)
	}
	return path
}

// Recording builds an in-memory recording from frames without touching disk.
// TCP frames are counted as skipped.
func Recording(frames []Frame) *capture.Recording {
	rec := &capture.Recording{
		Path:     "memory.pcap",
		Format:   capture.FormatPcap,
		LinkType: layers.LinkTypeEthernet,
	}
	for _, f := range frames {
		if f.DstPort == 0 {
			rec.Skipped++
			continue
		}
		rec.Packets = append(rec.Packets, capture.Packet{
			Timestamp: Epoch.Add(f.At),
			Payload:   bytes.Clone(f.Payload),
			DstPort:   f.DstPort,
		})
	}
	return rec
}
