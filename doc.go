/*
 * doc.go, part of amberio
 *
 * Copyright 2024 The amberio authors
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

/*
Package amberio reads Amber molecular dynamics files. The root package
holds the interfaces shared by the trajectory readers, plus a minimal
topology type and a prmtop reader that supplies the per-system atom
metadata a trajectory needs (most importantly, the atom count: Amber
ASCII trajectories do not declare it themselves).

The actual trajectory reading lives in the traj/amber subpackage.
Coordinates are handled as N×3 matrices from the v3 subpackage.
*/
package amberio
