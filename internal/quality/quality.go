// Package quality reports the technical tags of a release name: resolution,
// source, codecs and audio. Title extraction lives in package parser; this
// package only describes how a release was encoded.
package quality

import (
	"strings"

	"github.com/moistari/rls"
)

// Info holds the quality tags found in a release name.
type Info struct {
	Type       string   `json:"type" yaml:"type"`
	Resolution string   `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Source     string   `json:"source,omitempty" yaml:"source,omitempty"`
	Codec      []string `json:"codec,omitempty" yaml:"codec,omitempty"`
	HDR        []string `json:"hdr,omitempty" yaml:"hdr,omitempty"`
	Audio      []string `json:"audio,omitempty" yaml:"audio,omitempty"`
	Channels   string   `json:"channels,omitempty" yaml:"channels,omitempty"`
	Other      []string `json:"other,omitempty" yaml:"other,omitempty"`
	Cut        []string `json:"cut,omitempty" yaml:"cut,omitempty"`
	Edition    []string `json:"edition,omitempty" yaml:"edition,omitempty"`
	Container  string   `json:"container,omitempty" yaml:"container,omitempty"`
	Group      string   `json:"group,omitempty" yaml:"group,omitempty"`
}

// Detect parses name with rls and keeps the quality-related fields.
func Detect(name string) Info {
	r := rls.ParseString(name)

	return Info{
		Type:       r.Type.String(),
		Resolution: r.Resolution,
		Source:     r.Source,
		Codec:      r.Codec,
		HDR:        r.HDR,
		Audio:      r.Audio,
		Channels:   r.Channels,
		Other:      r.Other,
		Cut:        r.Cut,
		Edition:    r.Edition,
		Container:  r.Container,
		Group:      r.Group,
	}
}

// Empty reports whether no quality tag was recognised.
func (i Info) Empty() bool {
	return i.Resolution == "" && i.Source == "" && len(i.Codec) == 0 &&
		len(i.HDR) == 0 && len(i.Audio) == 0
}

// Summary renders the tags on one line, e.g. "1080p BluRay x264 DTS".
func (i Info) Summary() string {
	var parts []string
	if i.Resolution != "" {
		parts = append(parts, i.Resolution)
	}
	if i.Source != "" {
		parts = append(parts, i.Source)
	}
	parts = append(parts, i.HDR...)
	parts = append(parts, i.Codec...)
	parts = append(parts, i.Audio...)
	if i.Channels != "" {
		parts = append(parts, i.Channels)
	}
	return strings.Join(parts, " ")
}
