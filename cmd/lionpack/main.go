// Command lionpack inspects, extracts, and authors Lionhead pack files
// (.g3d mesh packs, .anm anim packs, .sad sound packs).
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/lionpack"
)

// CLI defines the command-line interface for lionpack.
var CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging."`

	List    ListCmd    `cmd:"" help:"List blocks and decoded assets in pack files."`
	Extract ExtractCmd `cmd:"" help:"Extract decoded assets to a directory."`
	Create  CreateCmd  `cmd:"" help:"Create a mesh pack from raw mesh payloads."`
}

// ListCmd prints the block table and decoded collection summary per file.
type ListCmd struct {
	Digest bool     `help:"Print BLAKE3 digests of block payloads."`
	Paths  []string `arg:"" type:"existingfile" help:"Pack files to list."`
}

func (c *ListCmd) Run(logger *slog.Logger) error {
	// One Pack per file; instances share nothing, so files load in
	// parallel. Output is buffered to keep per-file sections contiguous.
	reports := make([]string, len(c.Paths))
	var g errgroup.Group
	for i, path := range c.Paths {
		i, path := i, path
		g.Go(func() error {
			p := lionpack.New(lionpack.WithLogger(logger))
			if err := p.Open(path); err != nil {
				return err
			}
			reports[i] = c.report(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range reports {
		fmt.Print(r)
	}
	return nil
}

func (c *ListCmd) report(p *lionpack.Pack) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", p.Name())
	for _, name := range p.BlockNames() {
		data, err := p.Block(name)
		if err != nil {
			continue
		}
		if c.Digest {
			sum := blake3.Sum256(data)
			fmt.Fprintf(&sb, "  %-32s %10d  %s\n", name, len(data), hex.EncodeToString(sum[:]))
		} else {
			fmt.Fprintf(&sb, "  %-32s %10d\n", name, len(data))
		}
	}
	fmt.Fprintf(&sb, "  meshes=%d textures=%d animations=%d sounds=%d\n",
		len(p.Meshes()), len(p.Textures()), len(p.Animations()), len(p.Sounds()))
	return sb.String()
}

// ExtractCmd materializes decoded collections to files. With no kind flags
// set, everything present is extracted.
type ExtractCmd struct {
	Path       string `arg:"" type:"existingfile" help:"Pack file to extract."`
	Out        string `required:"" type:"path" help:"Output directory."`
	Textures   bool   `help:"Extract textures as .dds files."`
	Meshes     bool   `help:"Extract meshes as .l3d files."`
	Animations bool   `help:"Extract animations as .anm files."`
	Sounds     bool   `help:"Extract sound samples."`
}

func (c *ExtractCmd) Run(logger *slog.Logger) error {
	all := !c.Textures && !c.Meshes && !c.Animations && !c.Sounds

	p := lionpack.New(lionpack.WithLogger(logger))
	if err := p.Open(c.Path); err != nil {
		return err
	}
	if err := os.MkdirAll(c.Out, 0o750); err != nil {
		return err
	}

	if c.Textures || all {
		for _, key := range p.TextureKeys() {
			tex := p.Textures()[key]
			if err := writeDDS(filepath.Join(c.Out, key+".dds"), tex); err != nil {
				return err
			}
		}
	}
	if c.Meshes || all {
		for i, mesh := range p.Meshes() {
			name := fmt.Sprintf("mesh_%03d.l3d", i)
			if err := os.WriteFile(filepath.Join(c.Out, name), mesh, 0o640); err != nil {
				return err
			}
		}
	}
	if c.Animations || all {
		for i, anim := range p.Animations() {
			name := fmt.Sprintf("anim_%03d.anm", i)
			if err := os.WriteFile(filepath.Join(c.Out, name), anim, 0o640); err != nil {
				return err
			}
		}
	}
	if c.Sounds || all {
		for i, sound := range p.Sounds() {
			header := p.SampleHeaders()[i]
			name := header.NameString()
			if name == "" {
				name = fmt.Sprintf("sample_%03d", i)
			}
			if err := os.WriteFile(filepath.Join(c.Out, filepath.Base(name)), sound, 0o640); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDDS rebuilds a standalone .dds file: the container strips the "DDS "
// magic, so it is re-prefixed here ahead of the header and texel bytes.
func writeDDS(path string, tex lionpack.Texture) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(lionpack.DDSMagic); err != nil {
		f.Close()
		return err
	}
	if err := tex.EncodeDDS(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CreateCmd authors a mesh pack from raw L3D payload files.
type CreateCmd struct {
	Out  string   `required:"" type:"path" help:"Output pack file."`
	Mesh []string `type:"existingfile" help:"Raw mesh payload files, in pack order."`
}

func (c *CreateCmd) Run(logger *slog.Logger) error {
	p := lionpack.New(lionpack.WithLogger(logger))
	for _, path := range c.Mesh {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := p.InsertMesh(data); err != nil {
			return err
		}
	}
	return p.Write(c.Out)
}

func main() {
	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	ctx := kong.Parse(&CLI,
		kong.Name("lionpack"),
		kong.Description("Inspect, extract, and author Lionhead pack files."),
		kong.UsageOnError(),
		kong.Bind(logger),
	)
	if CLI.Verbose {
		level.Set(slog.LevelDebug)
	}
	ctx.FatalIfErrorf(ctx.Run())
}
