// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package corefmt

import (
	"bytes"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xfe, 0xff, 'a', 'b'}
	s := EncodeBase64(raw)
	got, err := DecodeBase64(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: %v != %v", got, raw)
	}
}

func TestDecodeBase64Invalid(t *testing.T) {
	if _, err := DecodeBase64("%%%"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}

func TestBlobFrameRoundTrip(t *testing.T) {
	payload := []byte("expedition report payload")
	var buf bytes.Buffer
	if err := WriteBlobFrame(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	// EncodeBlobFrame must produce the same bytes as WriteBlobFrame
	if enc := EncodeBlobFrame(payload); !bytes.Equal(enc, buf.Bytes()) {
		t.Fatalf("encode/write mismatch")
	}
	got, err := ReadBlobFrame(&buf, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestReadBlobFrameMaxBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBlobFrame(&buf, make([]byte, 64)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadBlobFrame(&buf, 16); err == nil {
		t.Fatalf("expected error for payload over maxBytes")
	}
}

func TestBlobFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBlobFrame(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadBlobFrame(&buf, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %v", got)
	}
}
