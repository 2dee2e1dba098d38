package cldurl

import (
	"testing"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	yes := fs.NewTristate(true)
	no := fs.NewTristate(false)
	for _, test := range []struct {
		name     string
		publicID string
		opt      Options
		want     string
	}{
		{
			name:     "CloudName",
			publicID: "test",
			opt:      Options{CloudName: "test321"},
			want:     "https://res.cloudinary.com/test321/image/upload/test",
		}, {
			name:     "Format",
			publicID: "test",
			opt:      Options{CloudName: "test123", Format: "jpg"},
			want:     "https://res.cloudinary.com/test123/image/upload/test.jpg",
		}, {
			name:     "RawTransformation",
			publicID: "test",
			opt:      Options{CloudName: "test123", RawTransformation: "e_blur:20"},
			want:     "https://res.cloudinary.com/test123/image/upload/e_blur:20/test",
		}, {
			name:     "RawTransformationFirst",
			publicID: "test",
			opt:      Options{CloudName: "test123", RawTransformation: "e_blur:20", Effect: "sepia"},
			want:     "https://res.cloudinary.com/test123/image/upload/e_blur:20/e_sepia/test",
		}, {
			name:     "RawTransformationVerbatim",
			publicID: "test",
			opt:      Options{CloudName: "test123", RawTransformation: "w_10,c_crop/e_sepia", Width: "100"},
			want:     "https://res.cloudinary.com/test123/image/upload/w_10,c_crop/e_sepia/w_100/test",
		}, {
			name:     "PrivateCdnSecure",
			publicID: "test",
			opt:      Options{CloudName: "test123", PrivateCdn: yes},
			want:     "https://test123-res.cloudinary.com/image/upload/test",
		}, {
			name:     "PrivateCdnSecureDistribution",
			publicID: "test",
			opt:      Options{CloudName: "test123", PrivateCdn: yes, SecureDistribution: "something.cloudfront.net"},
			want:     "https://something.cloudfront.net/image/upload/test",
		}, {
			name:     "SharedSecureDistribution",
			publicID: "test",
			opt:      Options{CloudName: "test123", SecureDistribution: "something.cloudfront.net"},
			want:     "https://something.cloudfront.net/test123/image/upload/test",
		}, {
			name:     "OldAkamaiSecureDistribution",
			publicID: "test",
			opt:      Options{CloudName: "test123", SecureDistribution: "cloudinary-a.akamaihd.net"},
			want:     "https://res.cloudinary.com/test123/image/upload/test",
		}, {
			name:     "Insecure",
			publicID: "test",
			opt:      Options{CloudName: "test123", Secure: no},
			want:     "http://res.cloudinary.com/test123/image/upload/test",
		}, {
			name:     "InsecurePrivateCdn",
			publicID: "test",
			opt:      Options{CloudName: "test123", Secure: no, PrivateCdn: yes},
			want:     "http://test123-res.cloudinary.com/image/upload/test",
		}, {
			name:     "Type",
			publicID: "test",
			opt:      Options{CloudName: "test123", Type: "facebook"},
			want:     "https://res.cloudinary.com/test123/image/facebook/test",
		}, {
			name:     "ResourceType",
			publicID: "test",
			opt:      Options{CloudName: "test123", ResourceType: "raw"},
			want:     "https://res.cloudinary.com/test123/raw/upload/test",
		}, {
			name:     "HTTPPassThrough",
			publicID: "http://example.com/",
			opt:      Options{CloudName: "test123"},
			want:     "http://example.com/",
		}, {
			name:     "HTTPPassThroughAnyCase",
			publicID: "HTTPS://Example.com/a b",
			opt:      Options{CloudName: "test123", Width: "100"},
			want:     "HTTPS://Example.com/a b",
		}, {
			name:     "Fetch",
			publicID: "http://example.com/",
			opt:      Options{CloudName: "test123", Type: "fetch"},
			want:     "https://res.cloudinary.com/test123/image/fetch/http://example.com/",
		}, {
			name:     "FetchEscaped",
			publicID: "http://blah.com/hello?a=b",
			opt:      Options{CloudName: "test123", Type: "fetch"},
			want:     "https://res.cloudinary.com/test123/image/fetch/http://blah.com/hello%3Fa%3Db",
		}, {
			name:     "YoutubeEscaped",
			publicID: "http://www.youtube.com/watch?v=d9NF2edxy-M",
			opt:      Options{CloudName: "test123", Type: "youtube"},
			want:     "https://res.cloudinary.com/test123/image/youtube/http://www.youtube.com/watch%3Fv%3Dd9NF2edxy-M",
		}, {
			name:     "FetchFormat",
			publicID: "http://cloudinary.com/images/logo.png",
			opt:      Options{CloudName: "test123", Format: "jpg", Type: "fetch"},
			want:     "https://res.cloudinary.com/test123/image/fetch/f_jpg/http://cloudinary.com/images/logo.png",
		}, {
			name:     "FetchExplicitFetchFormat",
			publicID: "http://cloudinary.com/logo.png",
			opt:      Options{CloudName: "test123", Format: "jpg", FetchFormat: "auto", Type: "fetch"},
			want:     "https://res.cloudinary.com/test123/image/fetch/f_auto/http://cloudinary.com/logo.png",
		}, {
			name:     "BackgroundName",
			publicID: "test",
			opt:      Options{CloudName: "test123", Background: "red"},
			want:     "https://res.cloudinary.com/test123/image/upload/b_red/test",
		}, {
			name:     "BackgroundHex",
			publicID: "test",
			opt:      Options{CloudName: "test123", Background: "#112233"},
			want:     "https://res.cloudinary.com/test123/image/upload/b_rgb:112233/test",
		}, {
			name:     "Effect",
			publicID: "test",
			opt:      Options{CloudName: "test123", Effect: "sepia"},
			want:     "https://res.cloudinary.com/test123/image/upload/e_sepia/test",
		}, {
			name:     "Cname",
			publicID: "test",
			opt:      Options{CloudName: "test123", Cname: "hello.com", Secure: no},
			want:     "http://hello.com/test123/image/upload/test",
		}, {
			name:     "CnameCdnSubdomain",
			publicID: "test",
			opt:      Options{CloudName: "test123", Cname: "hello.com", Secure: no, CdnSubdomain: yes},
			want:     "http://hello.com/test123/image/upload/test",
		}, {
			name:     "CnameIgnoredWhenSecure",
			publicID: "test",
			opt:      Options{CloudName: "test123", Cname: "hello.com"},
			want:     "https://res.cloudinary.com/test123/image/upload/test",
		}, {
			name:     "Border",
			publicID: "test",
			opt:      Options{CloudName: "test123", Border: "1px_solid_blue"},
			want:     "https://res.cloudinary.com/test123/image/upload/bo_1px_solid_blue/test",
		}, {
			name:     "FolderGetsVersion",
			publicID: "folder/test",
			opt:      Options{CloudName: "test123"},
			want:     "https://res.cloudinary.com/test123/image/upload/v1/folder/test",
		}, {
			name:     "ExplicitVersion",
			publicID: "folder/test",
			opt:      Options{CloudName: "test123", Version: "123"},
			want:     "https://res.cloudinary.com/test123/image/upload/v123/folder/test",
		}, {
			name:     "AlreadyVersioned",
			publicID: "v1234/test",
			opt:      Options{CloudName: "test123"},
			want:     "https://res.cloudinary.com/test123/image/upload/v1234/test",
		}, {
			name:     "DoubleSlashInPublicID",
			publicID: "folder//test",
			opt:      Options{CloudName: "test123"},
			want:     "https://res.cloudinary.com/test123/image/upload/v1/folder/test",
		}, {
			name:     "Shorten",
			publicID: "test",
			opt:      Options{CloudName: "test123", Shorten: yes},
			want:     "https://res.cloudinary.com/test123/iu/test",
		}, {
			name:     "ShortenOnlyImageUpload",
			publicID: "test",
			opt:      Options{CloudName: "test123", Shorten: yes, Type: "private"},
			want:     "https://res.cloudinary.com/test123/image/private/test",
		}, {
			name:     "EmbeddedMetadata",
			publicID: "image/private/v12/folder/id",
			opt:      Options{CloudName: "test123", Type: "upload", Version: "99"},
			want:     "https://res.cloudinary.com/test123/image/private/v12/folder/id",
		}, {
			name:     "EmbeddedRaw",
			publicID: "raw/upload/v3/doc.pdf",
			opt:      Options{CloudName: "test123"},
			want:     "https://res.cloudinary.com/test123/raw/upload/v3/doc.pdf",
		}, {
			name:     "LocalCloudName",
			publicID: "test",
			opt:      Options{CloudName: "/local", Width: "10"},
			want:     "/res/local/image/upload/w_10/test",
		}, {
			name:     "NoCloudName",
			publicID: "test",
			opt:      Options{},
			want:     "https://res.cloudinary.com/image/upload/test",
		}, {
			name:     "URLSuffix",
			publicID: "test",
			opt:      Options{CloudName: "test123", URLSuffix: "hello"},
			want:     "https://res.cloudinary.com/test123/images/test/hello",
		}, {
			name:     "URLSuffixFormat",
			publicID: "test",
			opt:      Options{CloudName: "test123", URLSuffix: "hello", Format: "jpg"},
			want:     "https://res.cloudinary.com/test123/images/test/hello.jpg",
		}, {
			name:     "URLSuffixPrivate",
			publicID: "test",
			opt:      Options{CloudName: "test123", URLSuffix: "hello", Type: "private"},
			want:     "https://res.cloudinary.com/test123/private_images/test/hello",
		}, {
			name:     "URLSuffixAuthenticated",
			publicID: "test",
			opt:      Options{CloudName: "test123", URLSuffix: "hello", Type: "authenticated"},
			want:     "https://res.cloudinary.com/test123/authenticated_images/test/hello",
		}, {
			name:     "UseRootPath",
			publicID: "test",
			opt:      Options{CloudName: "test123", UseRootPath: yes},
			want:     "https://res.cloudinary.com/test123/test",
		}, {
			name:     "UseRootPathURLSuffix",
			publicID: "test",
			opt:      Options{CloudName: "test123", UseRootPath: yes, URLSuffix: "hello"},
			want:     "https://res.cloudinary.com/test123/test/hello",
		}, {
			name:     "UseRootPathFalse",
			publicID: "test",
			opt:      Options{CloudName: "test123", UseRootPath: no, Type: "private"},
			want:     "https://res.cloudinary.com/test123/image/private/test",
		}, {
			name:     "SortedParameters",
			publicID: "test",
			opt: Options{
				CloudName:   "test123",
				Width:       "200",
				Height:      "100",
				Crop:        "fill",
				Gravity:     "face",
				DPR:         "2.0",
				AspectRatio: "1.5",
				Quality:     "auto",
				Effect:      "sepia",
				Border:      "2px_solid_red",
				Background:  "blue",
			},
			want: "https://res.cloudinary.com/test123/image/upload/b_blue,bo_2px_solid_red,e_sepia,q_auto/ar_1.5,c_fill,dpr_2.0,g_face,h_100,w_200/test",
		}, {
			name:     "TransformationSizeWins",
			publicID: "test",
			opt:      Options{CloudName: "test123", Width: "100", Height: "100", TransformationWidth: "300", TransformationHeight: "200"},
			want:     "https://res.cloudinary.com/test123/image/upload/h_200,w_300/test",
		}, {
			name:     "TransformationDoubleSlash",
			publicID: "test",
			opt:      Options{CloudName: "test123", RawTransformation: "l_fetch:http://a.com/x//y"},
			want:     "https://res.cloudinary.com/test123/image/upload/l_fetch:http://a.com/x/y/test",
		}, {
			name:     "Src",
			publicID: "ignored",
			opt:      Options{Src: "https://res.cloudinary.com/demo/image/upload/w_auto,h_auto/sample", Width: "100", Height: "50"},
			want:     "https://res.cloudinary.com/demo/image/upload/w_100,h_50/sample",
		}, {
			name:     "SrcOnlyFirstToken",
			publicID: "",
			opt:      Options{Src: "w_auto/w_auto", Width: "100"},
			want:     "w_100/w_auto",
		}, {
			name:     "SrcNoSize",
			publicID: "",
			opt:      Options{Src: "https://example.com/w_auto,h_auto/sample", Width: "100"},
			want:     "https://example.com/w_100,h_auto/sample",
		}, {
			name:     "EmptyPublicID",
			publicID: "",
			opt:      Options{CloudName: "test123"},
			want:     "",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Build(test.publicID, test.opt)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestBuildEscapesPublicID(t *testing.T) {
	for publicID, want := range map[string]string{
		"a b":    "a%20b",
		"a+b":    "a%2Bb",
		"a%20b":  "a%20b",
		"a-b":    "a-b",
		"a??b":   "a%3F%3Fb",
		"a:b":    "a:b",
		"100%":   "100%25",
		"café": "caf%C3%A9",
	} {
		got, err := Build(publicID, Options{CloudName: "test123"})
		require.NoError(t, err, publicID)
		assert.Equal(t, "https://res.cloudinary.com/test123/image/upload/"+want, got, publicID)
	}
}

func TestBuildErrors(t *testing.T) {
	yes := fs.NewTristate(true)
	for _, test := range []struct {
		name     string
		publicID string
		opt      Options
		want     error
	}{
		{"URLSuffixRaw", "test", Options{CloudName: "c", URLSuffix: "x", ResourceType: "raw"}, ErrURLSuffixNotSupported},
		{"URLSuffixFetch", "test", Options{CloudName: "c", URLSuffix: "x", Type: "facebook"}, ErrURLSuffixNotSupported},
		{"RootPathPrivate", "test", Options{CloudName: "c", UseRootPath: yes, Type: "private"}, ErrRootPathNotSupported},
		{"RootPathRaw", "test", Options{CloudName: "c", UseRootPath: yes, ResourceType: "raw"}, ErrRootPathNotSupported},
		{"URLSuffixDot", "test", Options{CloudName: "c", URLSuffix: "a.b"}, ErrInvalidURLSuffix},
		{"URLSuffixSlash", "test", Options{CloudName: "c", URLSuffix: "a/b"}, ErrInvalidURLSuffix},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Build(test.publicID, test.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, test.want)
			assert.Equal(t, "", got)
		})
	}
}

func TestBuildDoesNotModifyOptions(t *testing.T) {
	opt := Options{CloudName: "test123", Type: "fetch", Format: "jpg", Width: "10"}
	before := opt
	_, err := Build("http://example.com/a.png", opt)
	require.NoError(t, err)
	assert.Equal(t, before, opt)
}

func TestBuildDeterministic(t *testing.T) {
	opt, err := OptionsFromMap(configmap.Simple{
		"width":       "100",
		"cloud_name":  "demo",
		"quality":     "auto",
		"crop":        "fill",
		"private_cdn": "false",
	})
	require.NoError(t, err)
	first, err := Build("sample", opt)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		got, err := Build("sample", opt)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/q_auto/c_fill,w_100/sample", first)
}

func TestOptionsFromMap(t *testing.T) {
	opt, err := OptionsFromMap(configmap.Simple{
		"cloud_name":    "demo",
		"private_cdn":   "true",
		"secure":        "false",
		"width":         "100",
		"dpr":           "2.0",
		"url_suffix":    "hello",
		"use_root_path": "",
	})
	require.NoError(t, err)
	assert.Equal(t, Options{
		CloudName:  "demo",
		PrivateCdn: fs.NewTristate(true),
		Secure:     fs.NewTristate(false),
		Width:      "100",
		DPR:        "2.0",
		URLSuffix:  "hello",
	}, opt)

	_, err = OptionsFromMap(configmap.Simple{"secure": "perhaps"})
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	for _, test := range []struct {
		name         string
		publicID     string
		opt          Options
		delivered    bool
		resourceType string
		typ          string
	}{
		{"Defaults", "sample", Options{CloudName: "demo"}, true, "image", "upload"},
		{"Options", "sample", Options{CloudName: "demo", ResourceType: "video", Type: "private"}, true, "video", "private"},
		{"Embedded", "image/private/v1/x", Options{CloudName: "demo"}, true, "image", "private"},
		{"Suffix", "sample", Options{CloudName: "demo", URLSuffix: "hello"}, true, "image", "upload"},
		{"Shorten", "sample", Options{CloudName: "demo", Shorten: fs.NewTristate(true)}, true, "image", "upload"},
		{"Fetch", "http://example.com/a.jpg", Options{CloudName: "demo", Type: "fetch"}, true, "image", "fetch"},
		{"PassThrough", "http://example.com/a.jpg", Options{CloudName: "demo"}, false, "", ""},
		{"Src", "sample", Options{Src: "https://example.com/a.jpg"}, false, "", ""},
		{"Empty", "", Options{CloudName: "demo"}, false, "", ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			result, err := Resolve(test.publicID, test.opt)
			require.NoError(t, err)
			url, err := Build(test.publicID, test.opt)
			require.NoError(t, err)
			assert.Equal(t, url, result.URL)
			assert.Equal(t, test.delivered, result.Delivered)
			assert.Equal(t, test.resourceType, result.ResourceType)
			assert.Equal(t, test.typ, result.Type)
		})
	}

	result, err := Resolve("sample", Options{URLSuffix: "a.b"})
	assert.ErrorIs(t, err, ErrInvalidURLSuffix)
	assert.Equal(t, Result{}, result)
}
