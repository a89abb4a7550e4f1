package material

import "github.com/go-gl/mathgl/mgl32"

// Uniform is one vec3 shader input.
type Uniform struct {
	Name  string
	Value mgl32.Vec3
}

// Uniforms are the per-frame inputs of FragmentShader for a camera at viewPos. Intensities are
// folded into the colours.
func (l Lighting) Uniforms(viewPos mgl32.Vec3) []Uniform {
	return []Uniform{
		{"viewPos", viewPos},
		{"lightDir", l.LightDir},
		{"lightColor", l.LightColor.Mul(l.LightIntensity)},
		{"ambient", l.Ambient.Mul(l.AmbientIntensity)},
		{"skyColor", l.SkyColor.Mul(l.HemisphereIntensity)},
		{"groundColor", l.GroundColor.Mul(l.HemisphereIntensity)},
	}
}

// Same vertex attributes as raylib meshes. The fragment stage mirrors Lighting.Shade.
const (
	VertexShader = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	FragmentShader = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform vec3 ambient;
uniform vec3 skyColor;
uniform vec3 groundColor;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float w = 0.5 * N.y + 0.5;
  vec3 hemi = mix(groundColor, skyColor, w);
  float NdotL = max(dot(N, L), 0.0);
  vec3 light = ambient + hemi + lightColor * NdotL;
  finalColor = vec4(colDiffuse.rgb * light, colDiffuse.a);
}
`
)
