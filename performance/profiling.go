// This file is part of mdptrace.
//
// mdptrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mdptrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mdptrace.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/mdptrace/mdptrace/curated"
)

// Sentinal pattern for errors created by the profiling functions.
const ProfileError = "profile: %v"

// ProfileCPU runs the supplied function while the CPU profiler is active.
// The profile is written to outFile.
func ProfileCPU(outFile string, run func() error) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

// ProfileMem writes a heap profile to outFile. The garbage collector is run
// first so that the profile is up to date.
func ProfileMem(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	runtime.GC()
	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}

	return nil
}

// RunProfiler runs the supplied function, generating the CPU and heap
// profiles if profile is true. The profile files are named with the supplied
// prefix, for example "convert.cpu.profile" and "convert.mem.profile".
func RunProfiler(profile bool, prefix string, run func() error) error {
	if !profile {
		return run()
	}

	err := ProfileCPU(prefix+".cpu.profile", run)
	if err != nil {
		return err
	}

	return ProfileMem(prefix + ".mem.profile")
}
