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

package stats

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/zintix-labs/expedlab/corefmt"
	"github.com/zintix-labs/expedlab/errs"
)

// 單一快照的安全上限；報告是固定大小的小結構，1 MiB 綽綽有餘。
const maxSnapshotBytes uint64 = 1 << 20

// WriteSnapshot 把報告以 JSON + blob frame 寫入 w。
// 批次掃描（cmd/scan）用這個格式把多份報告串成一個二進位串流。
func WriteSnapshot(w io.Writer, r *ExpeditionReport) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return errs.Wrap(err, "snapshot marshal failed")
	}
	return corefmt.WriteBlobFrame(w, raw)
}

// ReadSnapshot 由 r 讀回一份報告；io.EOF 表示串流結束。
func ReadSnapshot(r io.Reader) (*ExpeditionReport, error) {
	raw, err := corefmt.ReadBlobFrame(r, maxSnapshotBytes)
	if err != nil {
		return nil, err
	}
	out := &ExpeditionReport{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, errs.Wrap(err, "snapshot unmarshal failed")
	}
	return out, nil
}

// SnapshotString 把單份報告編成一行 base64 字串（frame + base64），
// 適合貼進 ticket、log 或走純文字管線。
func SnapshotString(r *ExpeditionReport) (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", errs.Wrap(err, "snapshot marshal failed")
	}
	return corefmt.EncodeBase64(corefmt.EncodeBlobFrame(raw)), nil
}

// ParseSnapshotString 是 SnapshotString 的反向操作。
func ParseSnapshotString(s string) (*ExpeditionReport, error) {
	b, err := corefmt.DecodeBase64(s)
	if err != nil {
		return nil, errs.NewWarn("snapshot decode failed " + err.Error())
	}
	return ReadSnapshot(bytes.NewReader(b))
}
