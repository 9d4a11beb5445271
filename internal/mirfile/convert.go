package mirfile

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"borrowck/internal/mir"
)

// normalize puts identifiers in NFC so that visually equal names from
// different editors compare equal.
func normalize(s string) string {
	return norm.NFC.String(s)
}

func normalizeLifetime(s string) string {
	return normalize(strings.TrimPrefix(strings.TrimSpace(s), "'"))
}

// Convert builds a module from its file form. Every malformed entry is
// reported; the module is nil when any is found.
func Convert(f *File) (*mir.Module, error) {
	m := &mir.Module{Name: normalize(f.Name)}
	var errs []error
	for i := range f.Bodies {
		b, err := convertBody(&f.Bodies[i])
		if err != nil {
			name := f.Bodies[i].Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			errs = append(errs, fmt.Errorf("body %s: %w", name, err))
			continue
		}
		m.Bodies = append(m.Bodies, b)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func convertBody(bf *BodyFile) (*mir.Body, error) {
	var errs []error
	b := &mir.Body{Name: normalize(bf.Name)}

	for i, src := range bf.Params {
		t, err := ParseType(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("param %d %q: %w", i+1, src, err))
		}
		b.Params = append(b.Params, t)
	}
	if strings.TrimSpace(bf.Return) != "" {
		t, err := ParseType(bf.Return)
		if err != nil {
			errs = append(errs, fmt.Errorf("return type %q: %w", bf.Return, err))
		}
		b.Result = t
	}
	for _, lt := range bf.Lifetimes {
		b.LifetimeParams = append(b.LifetimeParams, normalizeLifetime(lt))
	}
	for _, src := range bf.Bounds {
		bound, err := ParseBound(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("bound %q: %w", src, err))
			continue
		}
		bound.Name = normalize(bound.Name)
		bound.Outlives = normalize(bound.Outlives)
		b.LifetimeBounds = append(b.LifetimeBounds, bound)
	}

	for i, lf := range bf.Locals {
		t, err := ParseType(lf.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("local _%d type %q: %w", i, lf.Type, err))
		}
		b.Locals = append(b.Locals, mir.LocalDecl{
			Name:     normalize(lf.Name),
			Type:     t,
			Mutable:  lf.Mut,
			Lifetime: normalizeLifetime(lf.Lifetime),
		})
	}

	labels := make(map[string]mir.BlockID, len(bf.Blocks))
	for i, blk := range bf.Blocks {
		if blk.Name == "" {
			continue
		}
		name := normalize(blk.Name)
		if _, dup := labels[name]; dup {
			errs = append(errs, fmt.Errorf("block label %q used twice", name))
			continue
		}
		id, err := safecast.Conv[int32](i)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		labels[name] = mir.BlockID(id)
	}
	resolve := func(label string) (mir.BlockID, bool) {
		id, ok := labels[normalize(label)]
		return id, ok
	}

	for i, blk := range bf.Blocks {
		bb := mir.BasicBlock{Name: normalize(blk.Name)}
		for j, src := range blk.Stmts {
			st, err := ParseStatement(src)
			if err != nil {
				errs = append(errs, fmt.Errorf("bb%d stmt %d %q: %w", i, j, src, err))
				continue
			}
			bb.Statements = append(bb.Statements, st)
		}
		if strings.TrimSpace(blk.Term) == "" {
			errs = append(errs, fmt.Errorf("bb%d: missing terminator", i))
		} else {
			t, err := ParseTerminator(blk.Term, resolve)
			if err != nil {
				errs = append(errs, fmt.Errorf("bb%d terminator %q: %w", i, blk.Term, err))
			}
			bb.Term = t
		}
		b.Blocks = append(b.Blocks, bb)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}
