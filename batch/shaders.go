package batch

import "strings"

const (
	attrPosition = "aPosition"
	attrColor    = "aColor"
	attrUV       = "aUV"
	attrLayer    = "aLayer"

	uniformProjection = "uProjection"
	uniformTexture    = "uTexture"
)

// shaderSources builds the sprite program for a vertex layout.
func shaderSources(l layout) (vertex, fragment string) {
	var vs, fs strings.Builder

	vs.WriteString("#version 410 core\n")
	vs.WriteString("layout(location = 0) in vec2 aPosition;\n")
	if l.color {
		vs.WriteString("layout(location = 1) in vec4 aColor;\n")
	}
	vs.WriteString("layout(location = 2) in vec2 aUV;\n")
	if l.layers {
		vs.WriteString("layout(location = 3) in float aLayer;\n")
	}
	vs.WriteString("uniform mat4 uProjection;\n")
	vs.WriteString("out vec4 vColor;\nout vec3 vUV;\n")
	vs.WriteString("void main() {\n")
	if l.color {
		vs.WriteString("\tvColor = aColor;\n")
	} else {
		vs.WriteString("\tvColor = vec4(1.0);\n")
	}
	if l.layers {
		vs.WriteString("\tvUV = vec3(aUV, aLayer);\n")
	} else {
		vs.WriteString("\tvUV = vec3(aUV, 0.0);\n")
	}
	vs.WriteString("\tgl_Position = uProjection * vec4(aPosition, 0.0, 1.0);\n}\n")

	fs.WriteString("#version 410 core\n")
	fs.WriteString("in vec4 vColor;\nin vec3 vUV;\n")
	if l.layers {
		fs.WriteString("uniform sampler2DArray uTexture;\n")
	} else {
		fs.WriteString("uniform sampler2D uTexture;\n")
	}
	fs.WriteString("out vec4 fragColor;\n")
	fs.WriteString("void main() {\n")
	if l.layers {
		fs.WriteString("\tfragColor = texture(uTexture, vUV) * vColor;\n}\n")
	} else {
		fs.WriteString("\tfragColor = texture(uTexture, vUV.xy) * vColor;\n}\n")
	}
	return vs.String(), fs.String()
}
