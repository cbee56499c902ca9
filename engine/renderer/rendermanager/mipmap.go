package rendermanager

// mipLevel is one generated level of an RGBA8 mip chain.
type mipLevel struct {
	pixels        []byte
	width, height int
}

// generateMipChain box-filters pixels (tightly packed RGBA8, width x height)
// down to a 1x1 level. There is no GPU-side mip generator wired yet, so this
// is a CPU fallback: adequate for the infrequently-loaded readonly textures
// this manager handles, not meant for per-frame render targets.
func generateMipChain(pixels []byte, width, height int) []mipLevel {
	levels := []mipLevel{{pixels: pixels, width: width, height: height}}

	w, h := width, height
	src := pixels
	for w > 1 || h > 1 {
		nw, nh := w/2, h/2
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}

		dst := make([]byte, nw*nh*4)
		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				dst[(y*nw+x)*4+0], dst[(y*nw+x)*4+1], dst[(y*nw+x)*4+2], dst[(y*nw+x)*4+3] =
					boxFilterTexel(src, w, h, x, y)
			}
		}

		levels = append(levels, mipLevel{pixels: dst, width: nw, height: nh})
		src, w, h = dst, nw, nh
	}

	return levels
}

// boxFilterTexel averages the up-to-four source texels covering destination
// texel (dx, dy) in a half-sized downsample.
func boxFilterTexel(src []byte, srcW, srcH, dx, dy int) (r, g, b, a byte) {
	x0, y0 := dx*2, dy*2
	var sr, sg, sb, sa, n int
	for oy := 0; oy < 2; oy++ {
		for ox := 0; ox < 2; ox++ {
			x, y := x0+ox, y0+oy
			if x >= srcW || y >= srcH {
				continue
			}
			i := (y*srcW + x) * 4
			sr += int(src[i+0])
			sg += int(src[i+1])
			sb += int(src[i+2])
			sa += int(src[i+3])
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return byte(sr / n), byte(sg / n), byte(sb / n), byte(sa / n)
}
