/*
 * doc.go, part of goerrat.
 *
 * Copyright 2024 The goerrat developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package errat computes a statistical quality profile for protein models from
the pattern of non-bonded atom-atom contacts.

The method scans each chain in 10-residue windows. For every window it
collects a histogram of C/N/O contact types within a 3.75 A cutoff, using a
uniform 4 A grid for the neighbor searches, and projects the normalized
histogram through a fixed quadratic discriminant calibrated on reliable
high-resolution structures. The resulting error value is large where the
local packing is atypical. The per-window values are folded into a
residue-indexed error profile and an overall quality factor: the percentage
of windows whose error value stays below the 95% rejection limit.

Typical use:

    st, err := pdb.ReadFile("model.pdb", logw)
    res, err := errat.Analyze(st, logw)
    if res.Scored() {
        report.WritePDF(w, res, "model", logw)
    }

The analysis itself is deterministic: windows are evaluated concurrently but
reduced sequentially, so the profile and the aggregate statistics do not
depend on scheduling. A structure that fails a precondition (too many atoms,
overfull grid cell, residue numbers decreasing within a chain) is rejected
as a whole, before any window is scored.

Subpackages handle the boundaries: pdb reads fixed-column PDB and mmCIF
files into the clean atom sequence the core expects, report renders the
error profile as per-chain PostScript or PDF pages, and batch runs several
independent structures through the pipeline at once.
*/
package errat
