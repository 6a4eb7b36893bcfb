package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt("rows"), 5)
	is.Equal(c.GetInt("empty-hole"), 0)
	is.Equal(c.GetInt("threads"), 0)
	is.Equal(c.GetBool("solve"), false)
	is.Equal(c.GetBool("debug"), false)
	is.Equal(c.GetString("store-path"), "")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--rows", "7", "--empty-hole", "5", "--threads", "8", "--debug"}))
	is.Equal(c.GetInt("rows"), 7)
	is.Equal(c.GetInt("empty-hole"), 5)
	is.Equal(c.GetInt("threads"), 8)
	is.Equal(c.GetBool("debug"), true)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("TRIPEG_EMPTY_HOLE", "4")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt("empty-hole"), 4)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	c.Set("rows", 6)
	is.Equal(c.GetInt("rows"), 6)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--rows", "not-a-number"}) != nil)
}
