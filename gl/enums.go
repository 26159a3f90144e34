package gl

// Enum values shared by every Functions implementation. Values follow the
// OpenGL 4.1 core / OpenGL ES 3.0 registries.
const (
	FALSE = 0
	TRUE  = 1
	NONE  = 0

	INVALID_INDEX = 0xFFFFFFFF

	// Data types
	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	HALF_FLOAT     = 0x140B

	// Uniform and attribute types reported by reflection
	FLOAT_VEC2                    = 0x8B50
	FLOAT_VEC3                    = 0x8B51
	FLOAT_VEC4                    = 0x8B52
	INT_VEC2                      = 0x8B53
	INT_VEC3                      = 0x8B54
	INT_VEC4                      = 0x8B55
	BOOL                          = 0x8B56
	BOOL_VEC2                     = 0x8B57
	BOOL_VEC3                     = 0x8B58
	BOOL_VEC4                     = 0x8B59
	FLOAT_MAT2                    = 0x8B5A
	FLOAT_MAT3                    = 0x8B5B
	FLOAT_MAT4                    = 0x8B5C
	SAMPLER_2D                    = 0x8B5E
	SAMPLER_3D                    = 0x8B5F
	SAMPLER_CUBE                  = 0x8B60
	SAMPLER_2D_SHADOW             = 0x8B62
	FLOAT_MAT2x3                  = 0x8B65
	FLOAT_MAT2x4                  = 0x8B66
	FLOAT_MAT3x2                  = 0x8B67
	FLOAT_MAT3x4                  = 0x8B68
	FLOAT_MAT4x2                  = 0x8B69
	FLOAT_MAT4x3                  = 0x8B6A
	SAMPLER_2D_ARRAY              = 0x8DC1
	SAMPLER_2D_ARRAY_SHADOW       = 0x8DC4
	SAMPLER_CUBE_SHADOW           = 0x8DC5
	UNSIGNED_INT_VEC2             = 0x8DC6
	UNSIGNED_INT_VEC3             = 0x8DC7
	UNSIGNED_INT_VEC4             = 0x8DC8
	INT_SAMPLER_2D                = 0x8DCA
	INT_SAMPLER_3D                = 0x8DCB
	INT_SAMPLER_CUBE              = 0x8DCC
	INT_SAMPLER_2D_ARRAY          = 0x8DCF
	UNSIGNED_INT_SAMPLER_2D       = 0x8DD2
	UNSIGNED_INT_SAMPLER_3D       = 0x8DD3
	UNSIGNED_INT_SAMPLER_CUBE     = 0x8DD4
	UNSIGNED_INT_SAMPLER_2D_ARRAY = 0x8DD7

	// Buffers
	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	UNIFORM_BUFFER       = 0x8A11
	STREAM_DRAW          = 0x88E0
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	// Textures
	TEXTURE_2D             = 0x0DE1
	TEXTURE_3D             = 0x806F
	TEXTURE_2D_ARRAY       = 0x8C1A
	TEXTURE_CUBE_MAP       = 0x8513
	TEXTURE0               = 0x84C0
	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703
	REPEAT                 = 0x2901
	CLAMP_TO_EDGE          = 0x812F
	MIRRORED_REPEAT        = 0x8370
	UNPACK_ALIGNMENT       = 0x0CF5

	// Pixel formats
	DEPTH_COMPONENT    = 0x1902
	RED                = 0x1903
	RGB                = 0x1907
	RGBA               = 0x1908
	RG                 = 0x8227
	DEPTH_STENCIL      = 0x84F9
	R8                 = 0x8229
	RG8                = 0x822B
	R32F               = 0x822E
	RGB8               = 0x8051
	RGBA8              = 0x8058
	RGBA32F            = 0x8814
	RGBA16F            = 0x881A
	SRGB8_ALPHA8       = 0x8C43
	DEPTH_COMPONENT16  = 0x81A5
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH24_STENCIL8   = 0x88F0
	UNSIGNED_INT_24_8  = 0x84FA

	// Shaders and programs
	FRAGMENT_SHADER       = 0x8B30
	VERTEX_SHADER         = 0x8B31
	COMPILE_STATUS        = 0x8B81
	LINK_STATUS           = 0x8B82
	INFO_LOG_LENGTH       = 0x8B84
	ACTIVE_UNIFORMS       = 0x8B86
	ACTIVE_ATTRIBUTES     = 0x8B89
	ACTIVE_UNIFORM_BLOCKS = 0x8A36

	// Framebuffers
	FRAMEBUFFER              = 0x8D40
	READ_FRAMEBUFFER         = 0x8CA8
	DRAW_FRAMEBUFFER         = 0x8CA9
	RENDERBUFFER             = 0x8D41
	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	DEPTH_STENCIL_ATTACHMENT = 0x821A
	FRAMEBUFFER_COMPLETE     = 0x8CD5

	// Queries
	QUERY_RESULT           = 0x8866
	QUERY_RESULT_AVAILABLE = 0x8867
	TIME_ELAPSED           = 0x88BF
	ANY_SAMPLES_PASSED     = 0x8C2F

	// Primitives
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_LOOP      = 0x0002
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006

	// Capabilities and fixed-function state
	CULL_FACE           = 0x0B44
	DEPTH_TEST          = 0x0B71
	BLEND               = 0x0BE2
	SCISSOR_TEST        = 0x0C11
	ZERO                = 0x0000
	ONE                 = 0x0001
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303
	DEPTH_BUFFER_BIT    = 0x0100
	STENCIL_BUFFER_BIT  = 0x0400
	COLOR_BUFFER_BIT    = 0x4000

	// Limits and strings
	VENDOR                      = 0x1F00
	RENDERER                    = 0x1F01
	VERSION                     = 0x1F02
	MAX_TEXTURE_IMAGE_UNITS     = 0x8872
	MAX_UNIFORM_BUFFER_BINDINGS = 0x8A2F
)
