package particle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/source"
)

// Set holds raw particle emitter documents in file name order.
type Set struct {
	Names []string
	Data  []json.RawMessage
}

// LoadDir reads every *.json emitter inside dir. A missing dir yields an
// empty set.
func LoadDir(dir string, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := &Set{Names: []string{}, Data: []json.RawMessage{}}
	if !source.Exists(dir) {
		logger.Info("no particle dir, step skipped", zap.String("dir", dir))
		return set, nil
	}

	paths, err := source.Glob(dir, "*.json")
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		raw, err := ReadRaw(path)
		if err != nil {
			return nil, err
		}
		set.Names = append(set.Names, source.ElementName(path))
		set.Data = append(set.Data, raw)
	}
	logger.Debug("particles loaded", zap.Int("count", len(set.Names)))
	return set, nil
}

// ReadRaw reads a JSON document without decoding it.
func ReadRaw(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid json", path)
	}
	return json.RawMessage(data), nil
}
