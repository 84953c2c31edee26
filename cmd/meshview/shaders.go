package main

// Basic lit shader for the mesh viewer: position + normal in,
// single directional light, flat albedo.

const vertexShaderSrc = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const fragmentShaderSrc = `#version 410 core
in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uColor;

out vec4 fragColor;

void main() {
    float diff = max(dot(normalize(vNormal), -uLightDir), 0.0);
    vec3 lit = uColor * (0.25 + 0.75 * diff);
    fragColor = vec4(lit, 1.0);
}
`
