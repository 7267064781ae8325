// Package paths resolves the machine environment prepenv splices into the
// templates.
//
// It handles:
//
//   - user home resolution (fatal when unresolvable)
//   - the optional LOCALAPPDATA value
//   - project root discovery
//   - forward-slash normalization of every resolved path
//
// # Project Root
//
// The project root is resolved with the following priority:
//
//  1. an explicit root (the --root flag)
//  2. PREPENV_ROOT
//  3. two directory levels above the scripts directory (--scripts-dir)
//  4. the git repository root
//  5. the current working directory (flagged as a fallback)
//
// # Usage
//
//	env, err := paths.Resolve(paths.Options{Root: "~/src/FanImeEngine"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(env.ProjectRoot) // /home/user/src/FanImeEngine
package paths
