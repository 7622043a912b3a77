package gldevice

// Attribute locations shared by the shaders and the vertex array setup.
const (
	attribPosition = 0
	attribNormal   = 1
	attribAmbient  = 2
	attribDiffuse  = 3
	attribSpecular = 4
	attribTexcoord = 5

	attribColor = 1
)

const meshVertexShader = `#version 460 core
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
layout(location = 2) in vec4 Ka;
layout(location = 3) in vec4 Kd;
layout(location = 4) in vec4 Ks;
layout(location = 5) in vec2 texcoord;

out vec3 position_eye;
out vec3 normal_eye;
out vec4 Kai;
out vec4 Kdi;
out vec4 Ksi;
out vec2 texcoordi;

void main() {
	position_eye = vec3(view * model * vec4(position, 1.0));
	normal_eye = normalize(vec3(view * model * vec4(normal, 0.0)));
	gl_Position = proj * vec4(position_eye, 1.0);
	Kai = Ka;
	Kdi = Kd;
	Ksi = Ks;
	texcoordi = texcoord;
}
` + "\x00"

const meshFragmentShader = `#version 460 core
uniform mat4 view;
uniform vec4 fixed_color;
uniform vec3 light_position_world;
uniform float specular_exponent;
uniform float lighting_factor;
uniform float texture_factor;
uniform sampler2D tex;

in vec3 position_eye;
in vec3 normal_eye;
in vec4 Kai;
in vec4 Kdi;
in vec4 Ksi;
in vec2 texcoordi;

out vec4 outColor;

void main() {
	vec3 Ia = vec3(Kai);

	vec3 light_position_eye = vec3(view * vec4(light_position_world, 1.0));
	vec3 to_light = normalize(light_position_eye - position_eye);
	float facing = dot(to_light, normal_eye);
	vec3 Id = vec3(Kdi) * max(facing, 0.0);

	vec3 reflection_eye = reflect(-to_light, normal_eye);
	vec3 to_viewer = normalize(-position_eye);
	float s = float(facing >= 0.0) * max(dot(reflection_eye, to_viewer), 0.0);
	vec3 Is = vec3(Ksi) * pow(s, specular_exponent);

	vec4 color = vec4(Ia + lighting_factor * (Id + Is) + (1.0 - lighting_factor) * vec3(Kdi),
		(Kai.a + Kdi.a + Ksi.a) / 3.0);
	outColor = mix(vec4(1.0), texture(tex, texcoordi), texture_factor) * color;
	if (fixed_color != vec4(0.0)) {
		outColor = fixed_color;
	}
}
` + "\x00"

const overlayVertexShader = `#version 460 core
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

layout(location = 0) in vec3 position;
layout(location = 1) in vec4 color;

out vec4 color_frag;

void main() {
	gl_Position = proj * view * model * vec4(position, 1.0);
	color_frag = color;
}
` + "\x00"

const overlayLineFragmentShader = `#version 460 core
in vec4 color_frag;
out vec4 outColor;

void main() {
	outColor = color_frag;
}
` + "\x00"

const overlayPointFragmentShader = `#version 460 core
in vec4 color_frag;
out vec4 outColor;

void main() {
	if (length(gl_PointCoord - vec2(0.5)) > 0.5) {
		discard;
	}
	outColor = color_frag;
}
` + "\x00"
