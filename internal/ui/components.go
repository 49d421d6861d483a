package ui

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yuriilychak/CocosStudio2MantiCore/internal/scene"
)

// Names of the children custom components are assembled from.
const (
	childSelected   = "btnSelected"
	childDeselected = "btnDeselected"
	childBall       = "btnBall"
	childIcon       = "btnIcon"
	childTitle      = "txtTitle"
)

// parseUserData splits an annotation of whitespace separated KEY:VALUE tokens.
func parseUserData(s string) map[string]string {
	out := make(map[string]string)
	for _, token := range strings.Fields(s) {
		key, value, _ := strings.Cut(token, ":")
		out[key] = value
	}
	return out
}

func (n *Normalizer) applyComponent(nd *node) {
	o, e := nd.obj, nd.el
	if o.UserData == "" {
		return
	}

	data := parseUserData(o.UserData)
	name := ParseComponentName(data["NAME"])
	if kind, ok := name.Kind(); ok {
		nd.kind = kind
	}

	switch name {
	case ComponentToggleButton:
		selected := e.extractChild(childSelected)
		deselected := e.extractChild(childDeselected)

		var fileData []int
		if deselected != nil {
			fileData = append(fileData, deselected.FileData...)
		}
		if selected != nil {
			fileData = append(fileData, selected.FileData...)
			e.Content = selected.Content
			e.Slice9 = selected.Slice9
			e.Children = selected.Children
		}
		e.FileData = fileData
	case ComponentProgressBar, ComponentSlider:
		e.FileData = n.textures(scene.ResourcePath(o.FileData))
		e.Clipped = data["TYPE"] == "CLIP"
		e.FileData = append(e.FileData, parseDirection(data["DIRECTION"]))
		if name == ComponentSlider {
			e.Content = e.extractChild(childBall)
		}
	case ComponentCheckBox:
		normal := scene.ResourcePath(o.NormalFileData)
		e.FileData = n.textures(
			normal,
			scene.ResourcePath(o.PressedFileData),
			overFrame(normal),
			scene.ResourcePath(o.DisabledFileData),
		)
		e.Content = e.extractChild(childIcon)
	case ComponentLabel:
		nd.autoSize = atoi(data["AUTO_SIZE"])
		nd.letterSpacing = atoi(data["LETTER_SPACING"])
	case ComponentNone:
	case ComponentUnknown:
		fallthrough
	default:
		n.logger.Warn("unknown custom component",
			zap.String("component", data["NAME"]), zap.String("node", o.Name))
	}
}

// overFrame derives the hover texture of a button from its normal texture.
func overFrame(normal string) string {
	if normal == "" {
		return ""
	}
	if i := strings.LastIndexByte(normal, '/'); i >= 0 {
		return normal[:i+1] + "over"
	}
	return "over"
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
