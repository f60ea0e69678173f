package command

var (
	table []*Spec
	index map[string]*Spec
)

func init() {
	table = []*Spec{
		// Built-ins and bootstrap
		{Name: "help", MinArgs: 0, MaxArgs: 1, Usage: "help [verb]", Summary: "list commands", Kind: KindBuiltin,
			build: func(a []string) (Command, error) { return helpCmd{Verb: arg(a, 0)}, nil }},
		{Name: "version", MinArgs: 0, MaxArgs: 0, Usage: "version", Summary: "print the version", Kind: KindBuiltin,
			build: func([]string) (Command, error) { return versionCmd{}, nil }},
		{Name: "verbose", MinArgs: 0, MaxArgs: 1, Usage: "verbose [on|off]", Summary: "switch diagnostics", Kind: KindBuiltin,
			build: func(a []string) (Command, error) {
				if len(a) == 0 {
					return verboseCmd{}, nil
				}
				on, err := parseSwitch("verbose", a[0])
				if err != nil {
					return nil, err
				}
				return verboseCmd{On: &on}, nil
			}},
		{Name: "project", MinArgs: 3, MaxArgs: 3, Usage: "project <paths> <design> <comms>", Summary: "load a project", Kind: KindBootstrap,
			build: func(a []string) (Command, error) { return projectCmd{Paths: a[0], Design: a[1], Comms: a[2]}, nil }},
		{Name: "reset", MinArgs: 0, MaxArgs: 0, Usage: "reset", Summary: "empty the model", Kind: KindRegular,
			build: func([]string) (Command, error) { return resetCmd{}, nil }},

		// Components
		{Name: "addcomp", MinArgs: 2, MaxArgs: Unlimited, Usage: "addcomp <id> <name> [res=n ...]", Summary: "add a component", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				res, err := parseResources("addcomp", a[2:])
				if err != nil {
					return nil, err
				}
				return addCompCmd{ID: a[0], Label: a[1], Resources: res}, nil
			}},
		{Name: "delcomp", MinArgs: 1, MaxArgs: 1, Usage: "delcomp <id>", Summary: "remove a component", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delCompCmd{ID: a[0]}, nil }},
		{Name: "setcompid", MinArgs: 2, MaxArgs: 2, Usage: "setcompid <id> <new>", Summary: "rename a component ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setCompIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setcompname", MinArgs: 2, MaxArgs: 2, Usage: "setcompname <id> <name>", Summary: "set a component name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setCompNameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "setcompres", MinArgs: 3, MaxArgs: 3, Usage: "setcompres <id> <res> <n>", Summary: "set a component resource", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				n, err := parseAmount("setcompres", a[2])
				if err != nil {
					return nil, err
				}
				return setCompResCmd{ID: a[0], Resource: a[1], Amount: n}, nil
			}},
		{Name: "delcompres", MinArgs: 2, MaxArgs: 2, Usage: "delcompres <id> <res>", Summary: "drop a component resource", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delCompResCmd{ID: a[0], Resource: a[1]}, nil }},

		// FPGAs
		{Name: "addfpga", MinArgs: 3, MaxArgs: Unlimited, Usage: "addfpga <id> <name> <arch> [res=n ...]", Summary: "add an FPGA", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				res, err := parseResources("addfpga", a[3:])
				if err != nil {
					return nil, err
				}
				return addFPGACmd{ID: a[0], Label: a[1], Arch: a[2], Capacity: res}, nil
			}},
		{Name: "delfpga", MinArgs: 1, MaxArgs: 1, Usage: "delfpga <id>", Summary: "remove an FPGA", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delFPGACmd{ID: a[0]}, nil }},
		{Name: "setfpgaid", MinArgs: 2, MaxArgs: 2, Usage: "setfpgaid <id> <new>", Summary: "rename an FPGA ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setFPGAIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setfpganame", MinArgs: 2, MaxArgs: 2, Usage: "setfpganame <id> <name>", Summary: "set an FPGA name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setFPGANameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "setfpgaarch", MinArgs: 2, MaxArgs: 2, Usage: "setfpgaarch <id> <arch>", Summary: "set an FPGA architecture", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setFPGAArchCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "setfpgares", MinArgs: 3, MaxArgs: 3, Usage: "setfpgares <id> <res> <n>", Summary: "set an FPGA capacity", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				n, err := parseAmount("setfpgares", a[2])
				if err != nil {
					return nil, err
				}
				return setFPGAResCmd{ID: a[0], Resource: a[1], Amount: n}, nil
			}},
		{Name: "delfpgares", MinArgs: 2, MaxArgs: 2, Usage: "delfpgares <id> <res>", Summary: "drop an FPGA resource", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delFPGAResCmd{ID: a[0], Resource: a[1]}, nil }},

		// Groups
		{Name: "addgroup", MinArgs: 1, MaxArgs: 2, Usage: "addgroup <id> [name]", Summary: "add a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return addGroupCmd{ID: a[0], Value: nameOr(a, 1)}, nil }},
		{Name: "delgroup", MinArgs: 1, MaxArgs: 1, Usage: "delgroup <id>", Summary: "remove a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delGroupCmd{ID: a[0]}, nil }},
		{Name: "setgroupid", MinArgs: 2, MaxArgs: 2, Usage: "setgroupid <id> <new>", Summary: "rename a group ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setGroupIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setgroupname", MinArgs: 2, MaxArgs: 2, Usage: "setgroupname <id> <name>", Summary: "set a group name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setGroupNameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "groupadd", MinArgs: 2, MaxArgs: 2, Usage: "groupadd <group> <comp>", Summary: "add a component to a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return groupAddCmd{Group: a[0], Component: a[1]}, nil }},
		{Name: "groupdel", MinArgs: 2, MaxArgs: 2, Usage: "groupdel <group> <comp>", Summary: "remove a component from a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return groupDelCmd{Group: a[0], Component: a[1]}, nil }},

		// Clusters
		{Name: "addcluster", MinArgs: 1, MaxArgs: 2, Usage: "addcluster <id> [name]", Summary: "add a cluster", Kind: KindRegular,
			build: func(a []string) (Command, error) { return addClusterCmd{ID: a[0], Value: nameOr(a, 1)}, nil }},
		{Name: "delcluster", MinArgs: 1, MaxArgs: 1, Usage: "delcluster <id>", Summary: "remove a cluster", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delClusterCmd{ID: a[0]}, nil }},
		{Name: "setclusterid", MinArgs: 2, MaxArgs: 2, Usage: "setclusterid <id> <new>", Summary: "rename a cluster ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setClusterIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setclustername", MinArgs: 2, MaxArgs: 2, Usage: "setclustername <id> <name>", Summary: "set a cluster name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setClusterNameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "clusteradd", MinArgs: 2, MaxArgs: 2, Usage: "clusteradd <cluster> <fpga>", Summary: "add an FPGA to a cluster", Kind: KindRegular,
			build: func(a []string) (Command, error) { return clusterAddCmd{Cluster: a[0], FPGA: a[1]}, nil }},
		{Name: "clusterdel", MinArgs: 2, MaxArgs: 2, Usage: "clusterdel <cluster> <fpga>", Summary: "remove an FPGA from a cluster", Kind: KindRegular,
			build: func(a []string) (Command, error) { return clusterDelCmd{Cluster: a[0], FPGA: a[1]}, nil }},

		// Connections
		{Name: "addconn", MinArgs: 5, MaxArgs: 5, Usage: "addconn <id> <name> <src> <sink> <density>", Summary: "add a connection", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				d, err := parseFloat("addconn", "density", a[4])
				if err != nil {
					return nil, err
				}
				return addConnCmd{ID: a[0], Label: a[1], Source: a[2], Sink: a[3], Density: d}, nil
			}},
		{Name: "delconn", MinArgs: 1, MaxArgs: 1, Usage: "delconn <id>", Summary: "remove a connection", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delConnCmd{ID: a[0]}, nil }},
		{Name: "setconnid", MinArgs: 2, MaxArgs: 2, Usage: "setconnid <id> <new>", Summary: "rename a connection ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setConnIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setconnname", MinArgs: 2, MaxArgs: 2, Usage: "setconnname <id> <name>", Summary: "set a connection name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setConnNameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "setconndensity", MinArgs: 2, MaxArgs: 2, Usage: "setconndensity <id> <density>", Summary: "set a connection density", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				d, err := parseFloat("setconndensity", "density", a[1])
				if err != nil {
					return nil, err
				}
				return setConnDensityCmd{ID: a[0], Density: d}, nil
			}},
		{Name: "setconnsrc", MinArgs: 2, MaxArgs: 2, Usage: "setconnsrc <id> <comp>", Summary: "set a connection source", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setConnSrcCmd{ID: a[0], Component: a[1]}, nil }},
		{Name: "setconnsink", MinArgs: 2, MaxArgs: 2, Usage: "setconnsink <id> <comp>", Summary: "set a connection sink", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setConnSinkCmd{ID: a[0], Component: a[1]}, nil }},

		// Links
		{Name: "addlink", MinArgs: 5, MaxArgs: 6, Usage: "addlink <id> <name> <src> <sink> <speed> [bidir|dir]", Summary: "add a link", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				speed, err := parseFloat("addlink", "speed", a[4])
				if err != nil {
					return nil, err
				}
				bidir := true
				if len(a) == 6 {
					if bidir, err = parseDirection("addlink", a[5]); err != nil {
						return nil, err
					}
				}
				return addLinkCmd{ID: a[0], Label: a[1], Source: a[2], Sink: a[3], Speed: speed, Bidirectional: bidir}, nil
			}},
		{Name: "dellink", MinArgs: 1, MaxArgs: 1, Usage: "dellink <id>", Summary: "remove a link", Kind: KindRegular,
			build: func(a []string) (Command, error) { return delLinkCmd{ID: a[0]}, nil }},
		{Name: "setlinkid", MinArgs: 2, MaxArgs: 2, Usage: "setlinkid <id> <new>", Summary: "rename a link ID", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setLinkIDCmd{ID: a[0], NewID: a[1]}, nil }},
		{Name: "setlinkname", MinArgs: 2, MaxArgs: 2, Usage: "setlinkname <id> <name>", Summary: "set a link name", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setLinkNameCmd{ID: a[0], Value: a[1]}, nil }},
		{Name: "setlinkspeed", MinArgs: 2, MaxArgs: 2, Usage: "setlinkspeed <id> <speed>", Summary: "set a link speed", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				speed, err := parseFloat("setlinkspeed", "speed", a[1])
				if err != nil {
					return nil, err
				}
				return setLinkSpeedCmd{ID: a[0], Speed: speed}, nil
			}},
		{Name: "setlinksrc", MinArgs: 2, MaxArgs: 2, Usage: "setlinksrc <id> <fpga>", Summary: "set a link source", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setLinkSrcCmd{ID: a[0], FPGA: a[1]}, nil }},
		{Name: "setlinksink", MinArgs: 2, MaxArgs: 2, Usage: "setlinksink <id> <fpga>", Summary: "set a link sink", Kind: KindRegular,
			build: func(a []string) (Command, error) { return setLinkSinkCmd{ID: a[0], FPGA: a[1]}, nil }},
		{Name: "setlinkbidir", MinArgs: 2, MaxArgs: 2, Usage: "setlinkbidir <id> <bidir|dir>", Summary: "set a link direction", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				bidir, err := parseDirection("setlinkbidir", a[1])
				if err != nil {
					return nil, err
				}
				return setLinkBidirCmd{ID: a[0], Bidirectional: bidir}, nil
			}},

		// Mapping
		{Name: "mapgroup", MinArgs: 2, MaxArgs: 2, Usage: "mapgroup <group> <fpga>", Summary: "map a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return mapGroupCmd{Group: a[0], FPGA: a[1]}, nil }},
		{Name: "mapcomp", MinArgs: 2, MaxArgs: 2, Usage: "mapcomp <comp> <fpga>", Summary: "map an ungrouped component", Kind: KindRegular,
			build: func(a []string) (Command, error) { return mapCompCmd{Component: a[0], FPGA: a[1]}, nil }},
		{Name: "unmapgroup", MinArgs: 1, MaxArgs: 1, Usage: "unmapgroup <group>", Summary: "unmap a group", Kind: KindRegular,
			build: func(a []string) (Command, error) { return unmapGroupCmd{Group: a[0]}, nil }},
		{Name: "unmapcomp", MinArgs: 1, MaxArgs: 1, Usage: "unmapcomp <comp>", Summary: "unmap an ungrouped component", Kind: KindRegular,
			build: func(a []string) (Command, error) { return unmapCompCmd{Component: a[0]}, nil }},
		{Name: "unmapall", MinArgs: 0, MaxArgs: 0, Usage: "unmapall", Summary: "unmap every unit", Kind: KindRegular,
			build: func([]string) (Command, error) { return unmapAllCmd{}, nil }},
		{Name: "map", Aliases: []string{"domapping"}, MinArgs: 0, MaxArgs: 0, Usage: "map", Summary: "place every unmapped unit", Kind: KindRegular,
			build: func([]string) (Command, error) { return mapCmd{}, nil }},

		// Queries
		{Name: "lscomp", MinArgs: 0, MaxArgs: 0, Usage: "lscomp", Summary: "list components", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsCompCmd{}, nil }},
		{Name: "lsfpga", MinArgs: 0, MaxArgs: 0, Usage: "lsfpga", Summary: "list FPGAs and islands", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsFPGACmd{}, nil }},
		{Name: "lsgroup", MinArgs: 0, MaxArgs: 0, Usage: "lsgroup", Summary: "list groups", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsGroupCmd{}, nil }},
		{Name: "lscluster", MinArgs: 0, MaxArgs: 0, Usage: "lscluster", Summary: "list clusters", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsClusterCmd{}, nil }},
		{Name: "lsconn", MinArgs: 0, MaxArgs: 0, Usage: "lsconn", Summary: "list connections", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsConnCmd{}, nil }},
		{Name: "lslink", MinArgs: 0, MaxArgs: 0, Usage: "lslink", Summary: "list links", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsLinkCmd{}, nil }},
		{Name: "lsmap", MinArgs: 0, MaxArgs: 0, Usage: "lsmap", Summary: "list the mapping", Kind: KindRegular,
			build: func([]string) (Command, error) { return lsMapCmd{}, nil }},
		{Name: "util", MinArgs: 0, MaxArgs: 1, Usage: "util [fpga]", Summary: "report utilization", Kind: KindRegular,
			build: func(a []string) (Command, error) { return utilCmd{FPGA: arg(a, 0)}, nil }},
		{Name: "cost", MinArgs: 0, MaxArgs: 0, Usage: "cost", Summary: "report communication cost", Kind: KindRegular,
			build: func([]string) (Command, error) { return costCmd{}, nil }},
		{Name: "check", MinArgs: 0, MaxArgs: 0, Usage: "check", Summary: "check model integrity", Kind: KindRegular,
			build: func([]string) (Command, error) { return checkCmd{}, nil }},

		// Files
		{Name: "load", MinArgs: 1, MaxArgs: 1, Usage: "load <path>", Summary: "read a system file", Kind: KindLoad,
			build: func(a []string) (Command, error) { return loadCmd{Path: a[0]}, nil }},
		{Name: "save", MinArgs: 1, MaxArgs: 1, Usage: "save <path>", Summary: "write a system file", Kind: KindRegular,
			build: func(a []string) (Command, error) { return saveCmd{Path: a[0]}, nil }},
		{Name: "loadcomms", MinArgs: 1, MaxArgs: 1, Usage: "loadcomms <path>", Summary: "read connections", Kind: KindLoad,
			build: func(a []string) (Command, error) { return loadCommsCmd{Path: a[0]}, nil }},
		{Name: "loadmap", MinArgs: 1, MaxArgs: 2, Usage: "loadmap <path> [pre|post]", Summary: "read a mapping file (default pre)", Kind: KindLoad,
			build: func(a []string) (Command, error) {
				usePre := true
				if len(a) == 2 {
					var err error
					if usePre, err = parseSection("loadmap", a[1]); err != nil {
						return nil, err
					}
				}
				return loadMapCmd{Path: a[0], UsePre: usePre}, nil
			}},
		{Name: "savemap", MinArgs: 1, MaxArgs: 3, Usage: "savemap <path> [pre|post] [final]", Summary: "write a mapping file (default post)", Kind: KindRegular,
			build: func(a []string) (Command, error) {
				c := saveMapCmd{Path: a[0]}
				for _, opt := range a[1:] {
					if opt == "final" {
						c.Finalize = true
						continue
					}
					usePre, err := parseSection("savemap", opt)
					if err != nil {
						return nil, err
					}
					c.UsePre = usePre
				}
				return c, nil
			}},
		{Name: "addrmap", MinArgs: 1, MaxArgs: 1, Usage: "addrmap <path>", Summary: "write the component address map", Kind: KindRegular,
			build: func(a []string) (Command, error) { return addrMapCmd{Path: a[0]}, nil }},
		{Name: "routing", MinArgs: 1, MaxArgs: 1, Usage: "routing <path>", Summary: "write routes and routing tables", Kind: KindRegular,
			build: func(a []string) (Command, error) { return routingCmd{Path: a[0]}, nil }},
		{Name: "outputs", MinArgs: 0, MaxArgs: 0, Usage: "outputs", Summary: "write every final output", Kind: KindRegular,
			build: func([]string) (Command, error) { return outputsCmd{}, nil }},
	}

	index = make(map[string]*Spec)
	for _, sp := range table {
		index[sp.Name] = sp
		for _, a := range sp.Aliases {
			index[a] = sp
		}
	}
}

func nameOr(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return args[0]
}
