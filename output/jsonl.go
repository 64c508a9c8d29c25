package output

import (
	"encoding/json"
	"io"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
)

// Record 是 JSONL 输出中的一行，对应一个文件的检查结果
type Record struct {
	RunID string `json:"RunID"`
	*model.Result
}

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteResults 以同一个 runID 导出全部结果，返回写入的行数
func (w *JSONLWriter) WriteResults(runID string, results []*model.Result) (int, error) {
	count := 0
	for _, res := range results {
		if err := w.Write(&Record{RunID: runID, Result: res}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
